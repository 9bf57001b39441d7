package animation

import (
	"fmt"
	"image"
	"math"

	"github.com/decker502/spriteanim/internal/act"
	"github.com/decker502/spriteanim/internal/spr"
)

// NewFramePart resolves one sprite clip into a frame part. It returns false
// when the clip places no image. shift is added to the clip position and
// carries the attach-point alignment of dependent pairs.
func NewFramePart(clip *act.SpriteClip, pairIndex int, sprites *spr.SpriteSet, shift image.Point) (FramePart, bool, error) {
	if clip.SpriteNumber == act.NoSprite {
		return FramePart{}, false, nil
	}

	spriteIndex := int(clip.SpriteNumber)
	if clip.SpriteType != nil && *clip.SpriteType == act.SpriteTypeRGBA {
		spriteIndex += sprites.PaletteImageCount()
	}

	size, ok := sprites.ImageSize(spriteIndex)
	if !ok {
		return FramePart{}, false, fmt.Errorf("%w: sprite %d out of range (%d images)",
			ErrMalformedAsset, spriteIndex, sprites.ImageCount())
	}

	part := FramePart{
		PairIndex:   pairIndex,
		SpriteIndex: spriteIndex,
		Offset:      clip.Position.Add(shift),
		Size:        scaleSize(size, clipZoom(clip)),
		Mirror:      clip.MirrorOn != 0,
	}
	if clip.Angle != nil {
		part.Angle = float32(*clip.Angle) / 360 * 2 * math.Pi
	}
	if clip.Color != nil {
		part.Color = UnpackColor(*clip.Color)
	}
	return part, true, nil
}

// clipZoom prefers the uniform zoom over the per-axis zoom.
func clipZoom(clip *act.SpriteClip) [2]float32 {
	switch {
	case clip.Zoom != nil:
		return [2]float32{*clip.Zoom, *clip.Zoom}
	case clip.Zoom2 != nil:
		return *clip.Zoom2
	default:
		return [2]float32{1, 1}
	}
}

// scaleSize scales a pixel size, rounding down.
func scaleSize(size image.Point, zoom [2]float32) image.Point {
	if zoom == [2]float32{1, 1} {
		return size
	}
	return image.Pt(
		int(math.Floor(float64(float32(size.X)*zoom[0]))),
		int(math.Floor(float64(float32(size.Y)*zoom[1]))),
	)
}

// singletonFrame wraps one part into a frame anchored at the part offset.
func singletonFrame(part FramePart) Frame {
	return Frame{
		Offset: part.Offset,
		Size:   part.Size,
		Parts:  []FramePart{part},
	}
}

// motionFrame builds the frame of one motion by merging all of its clips.
func motionFrame(motion *act.Motion, pairIndex int, sprites *spr.SpriteSet, shift image.Point) (Frame, error) {
	frames := make([]Frame, 0, len(motion.Clips))
	for i := range motion.Clips {
		part, ok, err := NewFramePart(&motion.Clips[i], pairIndex, sprites, shift)
		if err != nil {
			return Frame{}, fmt.Errorf("clip %d: %w", i, err)
		}
		if ok {
			frames = append(frames, singletonFrame(part))
		}
	}
	return MergeFrames(frames), nil
}
