package purchasing

import "github.com/google/uuid"

// ResolutionKind tags the outcome of resolving a line to a presentation
type ResolutionKind int

const (
	// ResolutionUnresolved means no presentation applies; the line receives
	// into base-unit stock.
	ResolutionUnresolved ResolutionKind = iota
	// ResolutionResolved carries the single presentation the line receives into
	ResolutionResolved
	// ResolutionAmbiguous means more than one candidate matched. The engine
	// treats this exactly like Unresolved and falls back to base-unit stock;
	// the tag exists so the fallback is an explicit, observable branch.
	ResolutionAmbiguous
)

// PresentationResolution is the tagged result of presentation resolution
type PresentationResolution struct {
	Kind           ResolutionKind
	PresentationID uuid.UUID // Valid only when Kind == ResolutionResolved
}

// ResolvedPresentation builds a resolved result
func ResolvedPresentation(presentationID uuid.UUID) PresentationResolution {
	return PresentationResolution{Kind: ResolutionResolved, PresentationID: presentationID}
}

// UnresolvedPresentation builds an unresolved result
func UnresolvedPresentation() PresentationResolution {
	return PresentationResolution{Kind: ResolutionUnresolved}
}

// AmbiguousPresentation builds an ambiguous result
func AmbiguousPresentation() PresentationResolution {
	return PresentationResolution{Kind: ResolutionAmbiguous}
}

// UsesPresentation returns true when the line should receive into packaged
// stock. Ambiguous resolutions fall back to base-unit stock.
func (r PresentationResolution) UsesPresentation() bool {
	return r.Kind == ResolutionResolved
}
