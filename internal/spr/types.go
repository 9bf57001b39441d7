// Package spr provides the parsed sprite image sets referenced by action
// tables. A sprite set holds two image banks: palette-indexed images and
// direct-color (RGBA) images. Action clips address images by a single index
// where palette images come first.
package spr

import "image"

// SpriteImage describes one image of a sprite set.
type SpriteImage struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// File is an optional PNG file holding the pixels, relative to the
	// sprite descriptor.
	File string `yaml:"file,omitempty"`

	// Image holds the decoded pixels when File was set.
	Image image.Image `yaml:"-"`
}

// SpriteSet is the root structure of one sprite file.
type SpriteSet struct {
	PaletteImages []SpriteImage `yaml:"palette_images"`
	RGBAImages    []SpriteImage `yaml:"rgba_images"`
}

// ImageCount returns the number of images in both banks.
func (s *SpriteSet) ImageCount() int {
	return len(s.PaletteImages) + len(s.RGBAImages)
}

// PaletteImageCount returns the number of palette-indexed images. Direct-color
// image indices are offset by this count.
func (s *SpriteSet) PaletteImageCount() int {
	return len(s.PaletteImages)
}

// Image returns the image at the combined index, palette images first.
func (s *SpriteSet) Image(index int) (*SpriteImage, bool) {
	if index < 0 || index >= s.ImageCount() {
		return nil, false
	}
	if index < len(s.PaletteImages) {
		return &s.PaletteImages[index], true
	}
	return &s.RGBAImages[index-len(s.PaletteImages)], true
}

// ImageSize returns the native pixel size of the image at the combined index.
func (s *SpriteSet) ImageSize(index int) (image.Point, bool) {
	img, ok := s.Image(index)
	if !ok {
		return image.Point{}, false
	}
	return image.Pt(img.Width, img.Height), true
}
