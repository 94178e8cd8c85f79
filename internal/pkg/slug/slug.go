// Package slug derives URL-safe article identifiers from titles.
package slug

import (
	"strings"

	"github.com/google/uuid"
)

const maxTitleWords = 5

// Generate builds a slug from at most the first five whitespace-delimited
// words of the title, lowercased and joined with "-", followed by an
// 8-hex-character random suffix. The suffix makes collisions practically
// impossible without a lookup-and-retry loop, so callers must invoke
// Generate again (fresh suffix) whenever the title changes.
func Generate(title string) string {
	words := strings.Fields(title)
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return strings.Join(words, "-") + "-" + randomSuffix()
}

// randomSuffix returns the first hex group of a random UUID (8 chars).
func randomSuffix() string {
	return uuid.NewString()[:8]
}
