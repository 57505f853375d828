package filter

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lowercases s and strips diacritics so "Pokémon" compares equal to "pokemon"
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(result)
}

// similarity returns the Jaro-Winkler similarity of two folded strings, 0 to 1
func similarity(a, b string) float64 {
	return float64(edlib.JaroWinklerSimilarity(foldText(a), foldText(b)))
}

// Closest returns the candidate most similar to name when it is similar enough to suggest
func Closest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if score := similarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= 0.8
}
