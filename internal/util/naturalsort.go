package util

import (
	"regexp"
	"strconv"
	"strings"
)

// Numbers may carry a fractional part so that issue 1.5 sorts between 1 and 2.
var tokenizer = regexp.MustCompile(`\d+(?:\.\d+)?|\D+`)

type naturalSortToken struct {
	str   string
	num   float64
	isNum bool
}

func tokenize(s string) []naturalSortToken {
	parts := tokenizer.FindAllString(s, -1)
	tokens := make([]naturalSortToken, len(parts))
	for i, p := range parts {
		if p[0] >= '0' && p[0] <= '9' {
			if num, err := strconv.ParseFloat(p, 64); err == nil {
				tokens[i] = naturalSortToken{num: num, isNum: true}
				continue
			}
		}
		tokens[i] = naturalSortToken{str: strings.ToLower(p)}
	}
	return tokens
}

// NaturalLess compares two strings in natural order: digit runs compare by
// value, everything else case-insensitively.
func NaturalLess(s1, s2 string) bool {
	t1 := tokenize(s1)
	t2 := tokenize(s2)

	for i := 0; i < min(len(t1), len(t2)); i++ {
		a, b := t1[i], t2[i]
		switch {
		case a.isNum && !b.isNum:
			return true
		case !a.isNum && b.isNum:
			return false
		case a.isNum:
			if a.num != b.num {
				return a.num < b.num
			}
		default:
			if a.str != b.str {
				return a.str < b.str
			}
		}
	}
	if len(t1) != len(t2) {
		return len(t1) < len(t2)
	}
	// Keep the order total for inputs that differ only by case or zero padding.
	return s1 < s2
}
