package normalize

import "time"

// createdAtLayouts are the ISO-8601-ish layouts accepted for created_at,
// tried in order. The first is the layout social-media APIs commonly use;
// RFC3339 is accepted as a more strictly ISO-8601 fallback.
var createdAtLayouts = []string{
	"Mon Jan 02 15:04:05 -0700 2006",
	time.RFC3339,
}

func parseCreatedAt(s string) (int64, bool) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}
