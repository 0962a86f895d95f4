package normalize

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/caneroj1/stemmer"
	"github.com/fatih/camelcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	mentionPattern       = regexp.MustCompile(`@\w+`)
	numberPattern        = regexp.MustCompile(`\b\d+\b`)
	yearPattern          = regexp.MustCompile(`^(19|20)\d{2}$`)
	punctuationPattern   = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	caseFolder           = cases.Fold()
	accentStripper       = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// stemCache memoises Stem calls; the same few thousand terms recur across
// every post in a stream, and stemmer.Stem re-walks its suffix rule table on
// every call.
var (
	stemCacheMu sync.Mutex
	stemCache   = map[string]string{}
)

func memoisedStem(word string) string {
	stemCacheMu.Lock()
	defer stemCacheMu.Unlock()
	if s, ok := stemCache[word]; ok {
		return s
	}
	s := stemmer.Stem(word)
	stemCache[word] = s
	return s
}

// Tokenize converts raw post text into a filtered, stemmed token list per
// spec.md section 4.2, generalising the teacher's internal/text.Tokenize (a
// single fixed lowercase/strip/stem/stopword pass) into cfg's gated,
// individually-switchable steps.
func Tokenize(text string, cfg TokenizerConfig) []string {
	if cfg.RemoveHTMLEntities {
		text = html.UnescapeString(text)
	}
	if cfg.RemoveURLs {
		text = urlPattern.ReplaceAllString(text, "")
	}
	if cfg.StripAccents {
		if out, _, err := transform.String(accentStripper, text); err == nil {
			text = out
		}
	}
	if cfg.ASCIICast {
		text = nonASCIIPattern.ReplaceAllString(text, "")
	}
	if cfg.RemoveMentions {
		text = mentionPattern.ReplaceAllString(text, "")
	}
	if cfg.SplitHashtags {
		text = hashtagPattern.ReplaceAllStringFunc(text, func(tag string) string {
			return strings.Join(camelcase.Split(strings.TrimPrefix(tag, "#")), " ")
		})
	} else if cfg.RemoveHashtags {
		text = hashtagPattern.ReplaceAllString(text, "")
	}
	if cfg.CaseFold {
		text = caseFolder.String(text)
	}
	if cfg.CharacterNormalization {
		n := cfg.CharNormalizationCount
		if n <= 0 {
			n = 3
		}
		text = collapseRepeats(text, n)
	}
	if cfg.StripPunctuation {
		text = punctuationPattern.ReplaceAllString(text, " ")
	}

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, t := range fields {
		if cfg.RemoveNumbers && numberPattern.MatchString(t) {
			if cfg.PreserveYears && yearPattern.MatchString(t) {
				// keep as-is, years survive downstream filters below
			} else {
				continue
			}
		}
		if cfg.Stem {
			t = memoisedStem(t)
		}
		if cfg.RemoveStopwords && stopWords[t] {
			continue
		}
		if cfg.MinLength > 0 && len(t) < cfg.MinLength {
			continue
		}
		tokens = append(tokens, t)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// collapseRepeats rewrites runs of the same rune n or longer down to a
// single occurrence ("sooooo" -> "so"), the character-normalisation step
// from spec.md section 4.2 that flattens expressive elongation before
// stemming sees it.
func collapseRepeats(text string, n int) string {
	r := []rune(text)
	var out []rune
	for i := 0; i < len(r); {
		j := i
		for j < len(r) && r[j] == r[i] {
			j++
		}
		if j-i >= n {
			out = append(out, r[i])
		} else {
			out = append(out, r[i:j]...)
		}
		i = j
	}
	return string(out)
}
