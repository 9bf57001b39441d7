package spr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ImageReader loads the raw bytes of an image file referenced by a sprite
// descriptor.
type ImageReader func(file string) ([]byte, error)

// ParseSpriteFile reads a sprite descriptor and decodes the PNG files it
// references, resolved relative to the descriptor's directory.
//
// Example:
//
//	sprites, err := spr.ParseSpriteFile("data/sprite/human/body.spr.yaml")
//	if err != nil {
//	    log.Fatalf("Failed to load sprite: %v", err)
//	}
//	fmt.Printf("Images: %d\n", sprites.ImageCount())
func ParseSpriteFile(path string) (*SpriteSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite file '%s': %w", path, err)
	}

	dir := filepath.Dir(path)
	sprites, err := ParseSprites(data, func(file string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, file))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse sprite file '%s': %w", path, err)
	}
	return sprites, nil
}

// ParseSprites parses a sprite descriptor from YAML bytes. When read is not
// nil, images with a File reference are decoded through it; a decoded image
// overrides the declared width and height.
func ParseSprites(data []byte, read ImageReader) (*SpriteSet, error) {
	var sprites SpriteSet
	if err := yaml.Unmarshal(data, &sprites); err != nil {
		return nil, fmt.Errorf("invalid sprite yaml: %w", err)
	}

	for bank, images := range [][]SpriteImage{sprites.PaletteImages, sprites.RGBAImages} {
		for i := range images {
			if err := loadImage(&images[i], read); err != nil {
				return nil, fmt.Errorf("bank %d image %d: %w", bank, i, err)
			}
		}
	}

	return &sprites, nil
}

func loadImage(img *SpriteImage, read ImageReader) error {
	if img.File != "" && read != nil {
		raw, err := read(img.File)
		if err != nil {
			return fmt.Errorf("failed to read image '%s': %w", img.File, err)
		}
		decoded, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("failed to decode image '%s': %w", img.File, err)
		}
		img.Image = decoded
		img.Width = decoded.Bounds().Dx()
		img.Height = decoded.Bounds().Dy()
	}

	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", img.Width, img.Height)
	}
	return nil
}
