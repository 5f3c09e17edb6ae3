package ingest

import (
	"strings"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// categoryRule pairs a key predicate with the category it selects. Rules
// are evaluated top to bottom and the first match wins, so a key matching
// several keywords always lands on the same category.
type categoryRule struct {
	match    func(key string) bool
	category model.AssetCategory
}

var categoryRules = []categoryRule{
	{segmentContains("logo"), model.CategoryLogo},
	{segmentContains("cover"), model.CategoryCover},
	{anyOf(segmentContains("banner"), segmentContains("ads"), segmentContains("slider")), model.CategoryBanner},
	{segmentContains("gallery"), model.CategoryGallery},
}

// CategoryForKey routes an object key, relative to the incoming prefix, to
// its asset category. Keys matching no rule fall back to the default
// category. The prefix must already be stripped: "uploads" itself would
// otherwise match the "ads" keyword.
func CategoryForKey(relKey string) model.AssetCategory {
	for _, r := range categoryRules {
		if r.match(relKey) {
			return r.category
		}
	}
	return model.CategoryDefault
}

func segmentContains(keyword string) func(string) bool {
	return func(key string) bool {
		for _, seg := range strings.Split(key, "/") {
			if strings.Contains(seg, keyword) {
				return true
			}
		}
		return false
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(key string) bool {
		for _, p := range preds {
			if p(key) {
				return true
			}
		}
		return false
	}
}
