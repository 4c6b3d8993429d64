package keywords

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractTitleBonus(t *testing.T) {
	result := Extract(Input{
		Title:       "best budget mic",
		Description: "great cheap mic for podcasts",
	}, DefaultTopN)

	if len(result.Core) == 0 {
		t.Fatal("Expected non-empty core")
	}
	if result.Core[0] != "mic" {
		t.Errorf("Core[0] = %q, want %q (title bonus should dominate)", result.Core[0], "mic")
	}

	pos := func(word string) int {
		for i, k := range result.Core {
			if k == word {
				return i
			}
		}
		return -1
	}
	if micPos, greatPos := pos("mic"), pos("great"); micPos == -1 || greatPos == -1 || micPos > greatPos {
		t.Errorf("Expected %q (pos %d) to rank above %q (pos %d)", "mic", micPos, "great", greatPos)
	}
}

func TestExtractIdempotent(t *testing.T) {
	in := Input{
		Title:       "서울 맛집 브이로그",
		Description: "서울 맛집 투어 best food tour",
		Tags:        []string{"맛집", "vlog"},
	}

	first := Extract(in, DefaultTopN)
	second := Extract(in, DefaultTopN)

	if !reflect.DeepEqual(first.Core, second.Core) {
		t.Errorf("Core not deterministic: %v vs %v", first.Core, second.Core)
	}
	if !reflect.DeepEqual(first.SuggestedTags, second.SuggestedTags) {
		t.Errorf("SuggestedTags not deterministic: %v vs %v", first.SuggestedTags, second.SuggestedTags)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	result := Extract(Input{}, DefaultTopN)

	if len(result.Core) != 0 {
		t.Errorf("Core = %v, want empty", result.Core)
	}
	if len(result.SuggestedTags) != 0 {
		t.Errorf("SuggestedTags = %v, want empty", result.SuggestedTags)
	}
}

func TestExtractStopWords(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		banned  []string
		present []string
	}{
		{
			name:    "English stop words dropped",
			input:   Input{Description: "the camera and the lens are great"},
			banned:  []string{"the", "and", "are"},
			present: []string{"camera", "lens", "great"},
		},
		{
			name:    "Korean stop words dropped",
			input:   Input{Description: "오늘 영상 채널 리뷰 카메라"},
			banned:  []string{"오늘", "영상", "채널"},
			present: []string{"리뷰", "카메라"},
		},
		{
			name:    "Single character tokens dropped",
			input:   Input{Description: "a b 값 cd"},
			banned:  []string{"b", "값"},
			present: []string{"cd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Extract(tt.input, DefaultTopN)
			core := strings.Join(result.Core, "|")
			for _, word := range tt.banned {
				if containsExact(result.Core, word) {
					t.Errorf("Core %q contains banned token %q", core, word)
				}
			}
			for _, word := range tt.present {
				if !containsExact(result.Core, word) {
					t.Errorf("Core %q missing token %q", core, word)
				}
			}
		})
	}
}

func TestExtractBigrams(t *testing.T) {
	// "aa bb" occurs twice, "bb aa" twice, "aa cc" once; topN=3 keeps one
	// bigram and the tie goes to the first-seen pair.
	result := Extract(Input{Description: "aa bb aa bb aa cc"}, 3)

	if !containsExact(result.Core, "aa bb") {
		t.Errorf("Core = %v, want bigram %q kept", result.Core, "aa bb")
	}
	if containsExact(result.Core, "bb aa") {
		t.Errorf("Core = %v, bigram budget floor(3/3)=1 exceeded", result.Core)
	}

	want := []string{"aa", "bb", "cc", "aa bb"}
	if !reflect.DeepEqual(result.Core, want) {
		t.Errorf("Core = %v, want %v", result.Core, want)
	}
}

func TestExtractNormalization(t *testing.T) {
	result := Extract(Input{Description: "Hello, WORLD!!! #tag @handle c++"}, DefaultTopN)

	for _, want := range []string{"hello", "world", "#tag", "@handle", "c++"} {
		if !containsExact(result.Core, want) {
			t.Errorf("Core = %v, missing normalized token %q", result.Core, want)
		}
	}
}

func TestExtractSuggestedTagCap(t *testing.T) {
	words := make([]string, 0, 40)
	for _, a := range []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"} {
		for _, b := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
			words = append(words, a+b)
		}
	}
	result := Extract(Input{Description: strings.Join(words, " ")}, DefaultTopN)

	if len(result.SuggestedTags) != 15 {
		t.Errorf("len(SuggestedTags) = %d, want 15", len(result.SuggestedTags))
	}
	if !reflect.DeepEqual(result.SuggestedTags, result.Core[:15]) {
		t.Error("SuggestedTags should be the first 15 core entries")
	}
}

func TestLongtail(t *testing.T) {
	t.Run("SuffixOrder", func(t *testing.T) {
		got := Longtail([]string{"캠핑"})
		want := []string{"캠핑 추천", "캠핑 비교", "캠핑 방법", "캠핑 브이로그"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Longtail = %v, want %v", got, want)
		}
	})

	t.Run("CappedAt40", func(t *testing.T) {
		seeds := make([]string, 25)
		for i := range seeds {
			seeds[i] = strings.Repeat("k", i+1)
		}
		got := Longtail(seeds)
		if len(got) != 40 {
			t.Errorf("len(Longtail) = %d, want 40", len(got))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := Longtail(nil); len(got) != 0 {
			t.Errorf("Longtail(nil) = %v, want empty", got)
		}
	})
}

func containsExact(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
