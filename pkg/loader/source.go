package loader

import (
	"github.com/decker502/spriteanim/internal/act"
	"github.com/decker502/spriteanim/internal/spr"
	"github.com/decker502/spriteanim/pkg/animation"
)

// AssetSource resolves asset paths to parsed sprite sets and action tables.
// Paths are slash separated and carry no file extension, e.g. "human/body".
type AssetSource interface {
	ResolveSprite(path string) (*spr.SpriteSet, error)
	ResolveActions(path string) (*act.ActionTable, error)
}

// TextureProvider supplies the texture region of every image of a sprite set,
// indexed like the sprite set (palette images first).
type TextureProvider interface {
	Textures(path string, sprites *spr.SpriteSet) ([]animation.TextureRegion, error)
}

// Forgetter is implemented by sources and providers that cache per path and
// can drop an entry so the next lookup reads it again.
type Forgetter interface {
	Forget(path string)
}
