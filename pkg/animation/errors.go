package animation

import "errors"

var (
	// ErrMalformedAsset reports action data that does not fit its sprite set.
	ErrMalformedAsset = errors.New("malformed asset")

	// ErrNoPairs reports a composition without any sprite/action pair.
	ErrNoPairs = errors.New("no animation pairs")
)
