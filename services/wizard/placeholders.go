// File: services/wizard/placeholders.go
package wizard

import (
	"sort"
	"strconv"
	"strings"
)

// numericKeys extracts the numeric answer keys, sorted descending so that
// replacing "#12" can never corrupt a later "#1" replacement.
func numericKeys(answers map[string]string) []int {
	keys := make([]int, 0, len(answers))
	for k := range answers {
		if n, err := strconv.Atoi(k); err == nil {
			keys = append(keys, n)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	return keys
}

// ReplacePlaceholders substitutes every "#<n>" placeholder in text with the
// answer stored under key "<n>". Non-numeric keys are ignored.
func ReplacePlaceholders(text string, answers map[string]string) string {
	for _, n := range numericKeys(answers) {
		key := strconv.Itoa(n)
		text = strings.ReplaceAll(text, "#"+key, answers[key])
	}
	return text
}
