package series

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separatorReplacer = strings.NewReplacer(
	"'", "",
	"’", "",
	"-", " ",
	"_", " ",
	":", " ",
	",", " ",
	".", " ",
)

// Normalize prepares a name for comparison: lowercase, accents folded,
// apostrophes dropped, separators turned into spaces, whitespace collapsed.
func Normalize(s string) string {
	folded, _, err := transform.String(foldAccents(), s)
	if err == nil {
		s = folded
	}
	s = separatorReplacer.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// foldAccents returns a fresh transformer; transformers carry state and are
// not safe to share between goroutines.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Similarity scores two names between 0 and 1. Empty names score 0 and
// identical normalized forms score 1. When one contains the other the score
// is the length ratio, otherwise the share of common words longer than two
// characters.
func Similarity(a, b string) float64 {
	return similarityNormalized(Normalize(a), Normalize(b))
}

func similarityNormalized(na, nb string) float64 {
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		shorter, longer := len(na), len(nb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	ta, tb := tokenSet(na), tokenSet(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for tok := range ta {
		if tb[tok] {
			shared++
		}
	}
	return float64(shared) / float64(max(len(ta), len(tb)))
}

// tokenSet returns the distinct words longer than two characters.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		if len([]rune(tok)) > 2 {
			set[tok] = true
		}
	}
	return set
}
