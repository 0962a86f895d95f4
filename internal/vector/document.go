package vector

// Document pairs a weight Vector (its Weights field) with its raw source
// text and an open attributes bag, matching spec.md's "Vector / Document"
// data model. The teacher's tfidf.Vector only
// ever represented the weights; Document widens that to the full Term shape
// the timeline and clusterer need (posts carry id/urls/timestamp/tweet
// attributes, per spec.md section 4.8 step 2).
type Document struct {
	Text       string
	Weights    Vector
	Attributes map[string]any
}

// NewDocument builds a Document from weights and text. The attributes map is
// allocated lazily on first Set.
func NewDocument(text string, weights Vector) *Document {
	return &Document{Text: text, Weights: weights}
}

// Normalise scales the document's weights to unit L2 norm in place.
func (d *Document) Normalise() *Document {
	d.Weights.Normalise()
	return d
}

// Attr returns an attribute value and whether it was present.
func (d *Document) Attr(key string) (any, bool) {
	if d.Attributes == nil {
		return nil, false
	}
	v, ok := d.Attributes[key]
	return v, ok
}

// SetAttr sets an attribute, allocating the backing map if needed.
func (d *Document) SetAttr(key string, value any) {
	if d.Attributes == nil {
		d.Attributes = make(map[string]any)
	}
	d.Attributes[key] = value
}

// TimeAttr reads an attribute as an int64 event-time, defaulting to the
// given attribute name "timestamp" when key is empty. Returns ok=false if
// the attribute is absent or not numeric.
func (d *Document) TimeAttr(key string) (int64, bool) {
	if key == "" {
		key = "timestamp"
	}
	v, ok := d.Attr(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	default:
		return 0, false
	}
}

// Concatenate builds a synthetic Document whose token multiset is the union
// (with multiplicity) of the input documents' text, re-weighted under
// scheme and L2-normalised. Matches spec.md section 4.1's concatenate
// contract, used by both consumers to build per-checkpoint and per-cluster
// pseudo-documents.
func Concatenate(docs []*Document, tokenize func(string) []string, scheme WeightingScheme) *Document {
	var allTokens []string
	var text string
	for i, d := range docs {
		toks := tokenize(d.Text)
		allTokens = append(allTokens, toks...)
		if i > 0 {
			text += " "
		}
		text += d.Text
	}
	doc := scheme.Create(text, allTokens)
	doc.Normalise()
	return doc
}
