package extract

import (
	"regexp"
	"strings"

	"github.com/revozen-chatbot/server/internal/agent/model"
)

// The extractor's free-form classification is unreliable for a few
// high-value phrasings, so deterministic overrides take precedence over the
// model's stated intent. Priority follows declaration order: count beats
// models-by-size beats tubeless. The first match wins.
var (
	reCountTypes    = regexp.MustCompile(`(?i)(type count|number of types|how many types)`)
	reModelsBySize  = regexp.MustCompile(`(?i)models? (available|for|with)? ?(size)? ?[0-9]+/[0-9]+r[0-9]+`)
	reTubelessSizes = regexp.MustCompile(`(?i)tubeless.*sizes?`)
)

func applyIntentOverrides(question string, info *model.ExtractedInfo) {
	q := strings.ToLower(question)
	switch {
	case reCountTypes.MatchString(q):
		setIntent(info, model.IntentCountTypeBySize)
	case reModelsBySize.MatchString(q):
		setIntent(info, model.IntentModelsAndTypesBySize)
	case reTubelessSizes.MatchString(q),
		strings.Contains(q, "tubeless") && strings.Contains(q, "size"):
		setIntent(info, model.IntentTubelessSizesByBrand)
	}
}

func setIntent(info *model.ExtractedInfo, intent model.Intent) {
	s := string(intent)
	info.Intent = &s
}
