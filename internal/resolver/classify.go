package resolver

import "strings"

var liveKeywords = []string{
	"today",
	"latest",
	"current",
	"now",
	"net worth",
	"price",
	"news",
	"update",
}

// IsLiveQuery reports whether the query asks for up-to-date information.
// Matching is by substring on the lowercased text.
func IsLiveQuery(query string) bool {
	q := strings.ToLower(query)
	for _, k := range liveKeywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// NormalizeKey turns a query into its fact store key.
func NormalizeKey(query string) string {
	key := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return strings.TrimRight(key, "?!. ")
}
