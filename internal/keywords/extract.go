// Package keywords extracts candidate search keywords from video text.
// Everything here is pure: same input, same output, no provider calls.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultTopN is the unigram budget; the bigram budget derives from it as
// floor(topN/3).
const DefaultTopN = 30

// suggestedTagCap is how many leading core keywords become tag suggestions.
const suggestedTagCap = 15

var stopKorean = toSet([]string{
	"그리고", "그러나", "하지만", "이것", "저것", "영상", "채널", "있는", "없는", "하는",
	"합니다", "까지", "에서", "으로", "하다", "했다", "가능", "소개", "최고", "오늘",
	"영상입니다", "자료",
})

var stopEnglish = toSet([]string{
	"the", "a", "an", "and", "or", "but", "this", "that", "with", "for",
	"from", "are", "is", "was", "were", "on", "to", "of", "in", "it",
	"you", "your", "our", "we", "they",
})

// Keeps letters (any script), digits, whitespace and #@&/+- ; everything
// else becomes a space.
var nonToken = regexp.MustCompile(`[^\p{L}\p{N}\s#@&/+-]`)

type Input struct {
	Title       string
	Description string
	Tags        []string
	Transcript  string
}

type Result struct {
	Core          []string
	SuggestedTags []string
}

// Extract ranks unigrams and bigrams from the concatenated input text.
// Unigrams are scored per occurrence (+3 when the token appears in the
// title, +1 otherwise) with stop words and single-character tokens
// dropped; bigrams are ranked by raw frequency with no stop-word
// filtering. Ties keep first-seen order.
func Extract(in Input, topN int) Result {
	if topN <= 0 {
		topN = DefaultTopN
	}

	base := strings.Join([]string{
		in.Title + " ",
		in.Description + " ",
		strings.Join(in.Tags, " "),
		in.Transcript,
	}, " ")

	tokens := tokenize(base)
	titleLower := strings.ToLower(in.Title)

	scores := make(map[string]int)
	var order []string

	for _, token := range tokens {
		if isStopWord(token) {
			continue
		}
		if utf8.RuneCountInString(token) < 2 {
			continue
		}

		bonus := 1
		if in.Title != "" && strings.Contains(titleLower, token) {
			bonus = 3
		}
		if _, seen := scores[token]; !seen {
			order = append(order, token)
		}
		scores[token] += bonus
	}

	unigrams := rankStable(order, scores)

	gramCounts := make(map[string]int)
	var gramOrder []string
	for i := 0; i+1 < len(tokens); i++ {
		a, b := tokens[i], tokens[i+1]
		if utf8.RuneCountInString(a) < 2 || utf8.RuneCountInString(b) < 2 {
			continue
		}
		gram := a + " " + b
		if _, seen := gramCounts[gram]; !seen {
			gramOrder = append(gramOrder, gram)
		}
		gramCounts[gram]++
	}

	bigrams := rankStable(gramOrder, gramCounts)
	if limit := topN / 3; len(bigrams) > limit {
		bigrams = bigrams[:limit]
	}

	if len(unigrams) > topN {
		unigrams = unigrams[:topN]
	}

	core := dedupe(append(unigrams, bigrams...))

	tags := core
	if len(tags) > suggestedTagCap {
		tags = tags[:suggestedTagCap]
	}

	return Result{Core: core, SuggestedTags: tags}
}

func tokenize(text string) []string {
	cleaned := nonToken.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

// isStopWord picks the Korean list when the token carries a Hangul
// syllable, the English list otherwise.
func isStopWord(token string) bool {
	if hasHangul(token) {
		_, ok := stopKorean[token]
		return ok
	}
	_, ok := stopEnglish[token]
	return ok
}

func hasHangul(s string) bool {
	for _, r := range s {
		if r >= '가' && r <= '힣' {
			return true
		}
	}
	return false
}

// rankStable orders keys descending by score, preserving first-seen order
// on ties.
func rankStable(order []string, scores map[string]int) []string {
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
