package loader

import (
	"errors"

	"github.com/decker502/spriteanim/pkg/animation"
)

var (
	// ErrAssetNotFound reports a sprite or action path the source does not know.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrMalformedAsset reports asset data that cannot be parsed or does not
	// fit its sprite set.
	ErrMalformedAsset = animation.ErrMalformedAsset

	// ErrUnknownEntityKind reports an entity kind missing from the configuration.
	ErrUnknownEntityKind = errors.New("unknown entity kind")

	// ErrNoParts reports a request without any asset path.
	ErrNoParts = errors.New("no animation parts")
)
