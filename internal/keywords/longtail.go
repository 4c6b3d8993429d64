package keywords

// Long-tail query variants appended to each seed keyword, in the order the
// reference tool emits them.
var longtailSuffixes = []string{"추천", "비교", "방법", "브이로그"}

const (
	longtailSeedCap = 20
	longtailCap     = 40
)

// Longtail expands the first 20 core keywords with the fixed suffix
// templates, capped at 40 entries.
func Longtail(core []string) []string {
	seeds := core
	if len(seeds) > longtailSeedCap {
		seeds = seeds[:longtailSeedCap]
	}

	out := make([]string, 0, len(seeds)*len(longtailSuffixes))
	for _, keyword := range seeds {
		for _, suffix := range longtailSuffixes {
			out = append(out, keyword+" "+suffix)
		}
	}

	if len(out) > longtailCap {
		out = out[:longtailCap]
	}
	return out
}
