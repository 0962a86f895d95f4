// Package apd provides the narrow seam the consumer package uses to hand
// off detected participants to automatic participant detection, which is
// out of scope for this module (spec.md's Non-goals). It is grounded on
// original_source/lib/apd/participant_detector.py, which treats the
// extrapolator as an optional, swappable collaborator: "if the
// extrapolator is not given, no additional participants are returned".
package apd

// Extrapolator looks for additional participants beyond the candidates a
// consumer already found. Real extrapolation (entity-set expansion
// against an external knowledge base) is out of scope; NoopExtrapolator
// is the only implementation this module ships.
type Extrapolator interface {
	Extrapolate(participants []string) []string
}

// NoopExtrapolator returns participants unchanged, matching the Python
// base Extrapolator class's default behaviour.
type NoopExtrapolator struct{}

// Extrapolate returns participants as-is.
func (NoopExtrapolator) Extrapolate(participants []string) []string {
	return participants
}
