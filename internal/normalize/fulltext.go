package normalize

// FullText extracts the text the rest of the pipeline should tokenize from a
// post, per spec.md section 4.2: walk into retweeted_status if present, then
// prefer extended_tweet.full_text over text. Returns "" if neither exists.
func FullText(p Post) string {
	if p == nil {
		return ""
	}
	target := p
	if rt := p.RetweetedStatus(); rt != nil {
		target = rt
	}
	if ext := target.ExtendedTweet(); ext != nil {
		if full := ext.String("full_text"); full != "" {
			return full
		}
	}
	return target.String("text")
}

// Valid applies the consumer-level filter rules from spec.md section 4.2:
// a post is kept only when every rule passes.
func Valid(p Post) bool {
	if p.String("lang") != "en" {
		return false
	}
	if len(p.Hashtags()) > 2 {
		return false
	}
	user := p.User()
	if user == nil {
		return false
	}
	favourites, _ := user.Float("favourites_count")
	if favourites <= 0 {
		return false
	}
	followers, _ := user.Float("followers_count")
	statuses, _ := user.Float("statuses_count")
	if statuses == 0 || followers/statuses < 1e-3 {
		return false
	}
	if len(p.URLs()) > 1 {
		return false
	}
	if user.String("description") == "" {
		return false
	}
	return true
}

// TimestampSeconds resolves a post's event time in epoch seconds, preferring
// timestamp_ms (milliseconds since epoch, ms remainder zeroed before
// dividing) and falling back to parsing created_at as RFC1123-ish ISO-8601,
// per spec.md section 6. ok is false if neither field is usable — the
// reader should log and drop the post (spec.md section 7's MissingFieldError).
func TimestampSeconds(p Post) (int64, bool) {
	if ms, ok := p.Float("timestamp_ms"); ok {
		return int64(ms) / 1000, true
	}
	if created := p.String("created_at"); created != "" {
		if t, ok := parseCreatedAt(created); ok {
			return t, true
		}
	}
	return 0, false
}
