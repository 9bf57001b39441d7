// Package atlas packs the images of a sprite set into one texture and
// serves the regions to the animation loader.
package atlas

import "image"

// DefaultMaxWidth is the shelf width used by NewProvider.
const DefaultMaxWidth = 1024

// Packer places rectangles on horizontal shelves. Each rectangle is followed
// by Padding empty pixels to the right and below so sampling never bleeds
// into a neighbour.
type Packer struct {
	MaxWidth int
	Padding  int
}

// NewPacker creates a packer with 1px padding.
func NewPacker(maxWidth int) *Packer {
	return &Packer{MaxWidth: maxWidth, Padding: 1}
}

// Pack returns one rectangle per size, in input order, and the size of the
// atlas holding them all. A size wider than MaxWidth gets a shelf of its own.
func (p *Packer) Pack(sizes []image.Point) ([]image.Rectangle, image.Point) {
	rects := make([]image.Rectangle, len(sizes))

	var (
		x, y        int
		shelfHeight int
		extent      image.Point
	)
	for i, size := range sizes {
		if x > 0 && x+size.X > p.MaxWidth {
			y += shelfHeight + p.Padding
			x, shelfHeight = 0, 0
		}

		rects[i] = image.Rect(x, y, x+size.X, y+size.Y)
		extent.X = max(extent.X, x+size.X)
		extent.Y = max(extent.Y, y+size.Y)

		x += size.X + p.Padding
		shelfHeight = max(shelfHeight, size.Y)
	}
	return rects, extent
}
