package normalize

// stopWords mirrors the teacher's internal/text stop-word list, carried over
// unchanged: it was already a generic English list, not specific to prompts.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "as": true,
	"be": true, "was": true, "are": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "shall": true, "must": true, "this": true,
	"that": true, "these": true, "those": true, "i": true, "me": true, "my": true,
	"we": true, "our": true, "you": true, "your": true, "he": true, "she": true,
	"his": true, "her": true, "they": true, "them": true, "their": true,
	"what": true, "which": true, "who": true, "when": true, "where": true,
	"how": true, "why": true, "not": true, "no": true, "so": true, "if": true,
	"then": true, "than": true, "too": true, "very": true, "just": true,
	"about": true, "also": true, "into": true, "each": true, "all": true,
	"any": true, "some": true, "more": true, "most": true, "other": true,
	"up": true, "out": true, "its": true, "only": true, "own": true, "same": true,
	"there": true, "here": true, "am": true, "were": true, "while": true,
	"during": true, "before": true, "after": true, "above": true, "below": true,
	"between": true, "through": true, "again": true, "further": true, "once": true,
	"both": true, "such": true, "don": true, "didn": true, "doesn": true,
	"won": true, "isn": true, "aren": true, "wasn": true, "weren": true,
	"rt": true, "via": true,
}
