package atlas

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/decker502/spriteanim/internal/spr"
	"github.com/decker502/spriteanim/pkg/animation"
	"github.com/hajimehoshi/ebiten/v2"
)

// placeholderColor fills images that carry a size but no decoded pixels.
var placeholderColor = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}

// Provider builds one atlas texture per sprite path and hands out the
// region of every image. Atlases are cached by path until forgotten.
//
// Thread Safety Note:
// Provider is NOT thread-safe and, like any ebiten image work, should be
// driven from the game goroutine.
type Provider struct {
	packer  *Packer
	atlases map[string][]animation.TextureRegion // sprite path -> regions
}

// NewProvider creates a provider packing onto DefaultMaxWidth shelves.
func NewProvider() *Provider {
	return &Provider{
		packer:  NewPacker(DefaultMaxWidth),
		atlases: make(map[string][]animation.TextureRegion),
	}
}

// Textures returns the regions of a sprite set, indexed like the sprite set.
func (p *Provider) Textures(path string, sprites *spr.SpriteSet) ([]animation.TextureRegion, error) {
	if regions, ok := p.atlases[path]; ok && len(regions) == sprites.ImageCount() {
		return regions, nil
	}

	count := sprites.ImageCount()
	if count == 0 {
		p.atlases[path] = nil
		return nil, nil
	}

	sizes := make([]image.Point, count)
	for i := range sizes {
		sizes[i], _ = sprites.ImageSize(i)
	}
	rects, extent := p.packer.Pack(sizes)
	if extent.X <= 0 || extent.Y <= 0 {
		return nil, fmt.Errorf("sprite '%s' has no drawable images", path)
	}

	atlas := ebiten.NewImage(extent.X, extent.Y)
	regions := make([]animation.TextureRegion, count)
	for i, rect := range rects {
		img, _ := sprites.Image(i)
		drawImage(atlas, rect, img)
		regions[i] = animation.TextureRegion{Texture: atlas, Rect: rect}
	}

	p.atlases[path] = regions
	log.Printf("[AtlasProvider] Built atlas for %s: %dx%d, %d images", path, extent.X, extent.Y, count)
	return regions, nil
}

// Forget drops the atlas of a sprite path. Animation tables composed
// earlier keep the old texture alive until they are released.
func (p *Provider) Forget(path string) {
	delete(p.atlases, path)
}

// drawImage copies the decoded pixels into rect, or fills rect with the
// placeholder color when there are none.
func drawImage(atlas *ebiten.Image, rect image.Rectangle, img *spr.SpriteImage) {
	target := atlas.SubImage(rect).(*ebiten.Image)
	if img.Image == nil {
		target.Fill(placeholderColor)
		return
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	atlas.DrawImage(ebiten.NewImageFromImage(img.Image), opts)
}
