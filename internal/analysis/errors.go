package analysis

import "errors"

// Contract-violation errors. All are deterministic for a given input: the
// caller sent malformed data and must fix it, so nothing here is retryable.
var (
	// ErrMismatchedUniverse means two rankings being correlated do not cover
	// the same municipality code set.
	ErrMismatchedUniverse = errors.New("rankings cover different municipality sets")

	// ErrMissingCode means delta analysis found a code in one ranking that is
	// absent from the other.
	ErrMissingCode = errors.New("municipality code missing from paired ranking")

	// ErrEmptyCatalog means action matching was requested against an empty
	// catalog, a non-positive suggestion limit, or a severity profile that
	// matches no action at all.
	ErrEmptyCatalog = errors.New("no candidate actions to suggest")

	// ErrNoMunicipalities means the platform ranking was requested for an
	// empty municipality set.
	ErrNoMunicipalities = errors.New("no municipality data")
)
