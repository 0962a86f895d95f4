package normalize

// Post is the opaque associative post record described in spec.md section 3.
// The core only ever reads a handful of fields from it, so rather than a
// concrete struct (which would force a rigid schema on every social-media
// shape the pipeline might ingest) it stays a loosely-typed JSON object, the
// way the teacher's cmd/focus/main.go decodes hook input and transcripts with
// anonymous structs around json.RawMessage for the parts it doesn't care
// about.
type Post map[string]any

// Get looks up a top-level field.
func (p Post) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	return v, ok
}

// String returns a string field, or "" if absent or not a string.
func (p Post) String(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Map returns a nested object field as a Post, or nil if absent.
func (p Post) Map(key string) Post {
	v, ok := p.Get(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return Post(m)
}

// Slice returns an array field as a []any, or nil if absent.
func (p Post) Slice(key string) []any {
	v, ok := p.Get(key)
	if !ok {
		return nil
	}
	s, _ := v.([]any)
	return s
}

// Float returns a numeric field as float64, or 0 if absent/non-numeric.
// JSON numbers decode to float64 via encoding/json, but timestamp_ms is
// sometimes carried as a string by producers, so a string fallback is
// attempted too.
func (p Post) Float(key string) (float64, bool) {
	v, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := parseFloat(n)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Bool returns a boolean field, defaulting to false.
func (p Post) Bool(key string) bool {
	v, ok := p.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// User returns the post's user sub-object.
func (p Post) User() Post { return p.Map("user") }

// RetweetedStatus returns the retweeted_status sub-object, if any.
func (p Post) RetweetedStatus() Post { return p.Map("retweeted_status") }

// QuotedStatus returns the quoted_status sub-object, if any.
func (p Post) QuotedStatus() Post { return p.Map("quoted_status") }

// ExtendedTweet returns the extended_tweet sub-object, if any.
func (p Post) ExtendedTweet() Post { return p.Map("extended_tweet") }

// Entities returns the entities sub-object.
func (p Post) Entities() Post { return p.Map("entities") }

// Hashtags returns entities.hashtags.
func (p Post) Hashtags() []any { return p.Entities().Slice("hashtags") }

// URLs returns entities.urls.
func (p Post) URLs() []any { return p.Entities().Slice("urls") }

// UserMentions returns entities.user_mentions.
func (p Post) UserMentions() []any { return p.Entities().Slice("user_mentions") }
