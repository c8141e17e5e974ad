package resolver

import "strings"

var hedgePhrases = []string{
	"i think",
	"probably",
	"might be",
	"guess",
	"not sure",
}

// Verify accepts an answer only when it cites at least one source
// and does not hedge.
func Verify(answer string, sources []string) bool {
	if len(sources) == 0 {
		return false
	}

	lower := strings.ToLower(answer)
	for _, h := range hedgePhrases {
		if strings.Contains(lower, h) {
			return false
		}
	}
	return true
}
