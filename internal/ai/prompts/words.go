package prompts

import "strings"

// ForbiddenWords are marketing buzzwords generated copy must never contain.
var ForbiddenWords = []string{
	"revolutionize",
	"supercharge",
	"seamless",
	"game-changer",
	"cutting-edge",
	"next-generation",
	"powerful",
	"unlock",
	"elevate",
	"empower",
	"leverage",
	"synergy",
	"robust",
	"scalable",
	"innovative",
}

func quotedList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + w + `"`
	}
	return strings.Join(quoted, ", ")
}
