package normalize

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

var (
	urlPattern          = regexp.MustCompile(`https?://\S+`)
	retweetPrefixPattern = regexp.MustCompile(`^RT @\w+:\s*`)
	nonASCIIPattern     = regexp.MustCompile(`[^\x00-\x7F]`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	hashtagPattern      = regexp.MustCompile(`#\w+`)
	sentenceEndPattern  = regexp.MustCompile(`[.!?]\s*$`)
)

// Clean runs the post-text cleaner pipeline from spec.md section 4.2 over
// text, gated step by step by cfg. It generalises the teacher's
// internal/text.CleanPrompt (a single fixed tag-stripping pass) into a
// multi-step, individually-switchable pipeline.
func Clean(p Post, cfg CleanerConfig) string {
	text := FullText(p)

	if cfg.RemoveRetweetPrefix {
		text = retweetPrefixPattern.ReplaceAllString(text, "")
	}
	if cfg.ReplaceMentions {
		text = replaceMentions(p, text)
	}
	if cfg.CollapseNewlines {
		text = strings.ReplaceAll(text, "\n", " ")
		text = strings.ReplaceAll(text, "\r", " ")
	}
	if cfg.RemoveHTMLEntities {
		text = html.UnescapeString(text)
	}
	if cfg.RemoveURLs {
		text = urlPattern.ReplaceAllString(text, "")
	}
	if cfg.SplitHashtags {
		text = hashtagPattern.ReplaceAllStringFunc(text, func(tag string) string {
			return strings.Join(camelcase.Split(strings.TrimPrefix(tag, "#")), " ")
		})
	} else if cfg.RemoveHashtags {
		text = hashtagPattern.ReplaceAllString(text, "")
	}
	if cfg.RemoveNonASCII {
		text = nonASCIIPattern.ReplaceAllString(text, "")
	}
	if cfg.CollapseWhitespace {
		text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	}
	if cfg.CompleteSentences {
		text = completeSentence(text)
	}
	if cfg.Capitalise {
		text = capitaliseFirst(text)
	}
	return text
}

// replaceMentions substitutes each @screen_name occurrence with the
// mentioned user's display name, drawing from entities.user_mentions on the
// post, its retweeted_status, and its quoted_status per spec.md section 4.2 —
// a post quoting or retweeting another carries its own mention list
// alongside the parent's.
func replaceMentions(p Post, text string) string {
	for _, src := range []Post{p, p.RetweetedStatus(), p.QuotedStatus(), p.ExtendedTweet()} {
		if src == nil {
			continue
		}
		for _, raw := range src.UserMentions() {
			mention, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			screenName, _ := mention["screen_name"].(string)
			name, _ := mention["name"].(string)
			if screenName == "" || name == "" {
				continue
			}
			text = strings.ReplaceAll(text, "@"+screenName, name)
		}
	}
	return text
}

func completeSentence(text string) string {
	if text == "" {
		return text
	}
	if sentenceEndPattern.MatchString(text) {
		return text
	}
	return text + "."
}

func capitaliseFirst(text string) string {
	r := []rune(text)
	if len(r) == 0 {
		return text
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
