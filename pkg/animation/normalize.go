package animation

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// normalizeMargin is added to the offset spread to absorb off-by-one rounding
// in the coordinate math.
var normalizeMargin = image.Pt(2, 2)

// ConvertCoordinate maps a pixel coordinate inside a frame rectangle of the
// given size into normalized frame space: x in [-1, 1] from left to right,
// y in [0, 2] from bottom to top.
func ConvertCoordinate(coordinate, size image.Point) mgl32.Vec2 {
	x := (float32(coordinate.X)/float32(size.X) - 0.5) * 2
	y := 2 - (float32(coordinate.Y)/float32(size.Y))*2
	return mgl32.Vec2{x, y}
}

// NormalizeAction gives every frame of one action the same size and anchor
// and precomputes the texture quad of every part relative to that shared
// rectangle. It returns new frames; the input is not modified.
func NormalizeAction(frames []Frame) []Frame {
	if len(frames) == 0 {
		return nil
	}

	maxSize := frames[0].Size
	minOffset := frames[0].Offset
	maxOffset := frames[0].Offset
	for i := range frames[1:] {
		f := &frames[i+1]
		maxSize.X = max(maxSize.X, f.Size.X)
		maxSize.Y = max(maxSize.Y, f.Size.Y)
		minOffset.X = min(minOffset.X, f.Offset.X)
		minOffset.Y = min(minOffset.Y, f.Offset.Y)
		maxOffset.X = max(maxOffset.X, f.Offset.X)
		maxOffset.Y = max(maxOffset.Y, f.Offset.Y)
	}

	removeOffset := maxOffset.Sub(minOffset).Add(normalizeMargin)
	size := maxSize.Add(removeOffset)
	offset := minOffset.Add(removeOffset)

	normalized := make([]Frame, len(frames))
	for i := range frames {
		frame := Frame{
			Offset:       offset,
			Size:         size,
			RemoveOffset: removeOffset,
			Parts:        make([]FramePart, len(frames[i].Parts)),
		}
		frame.TopLeft = topLeft(&frame)
		origin := frameOrigin(&frame)
		for j, part := range frames[i].Parts {
			if !part.IsAbsent() {
				part.Offset = part.Offset.Add(removeOffset)
				part.TextureCoordinates, part.Transform = textureQuad(&part, origin, size)
			}
			frame.Parts[j] = part
		}
		normalized[i] = frame
	}
	return normalized
}

// frameOrigin returns the top-left corner of the frame content before the
// normalization shift.
func frameOrigin(f *Frame) image.Point {
	return f.Offset.Sub(f.Size.Sub(f.RemoveOffset).Sub(one).Div(2))
}

func textureQuad(part *FramePart, origin, frameSize image.Point) ([4]mgl32.Vec2, mgl32.Mat4) {
	corner := part.Offset.Sub(halfExtent(part.Size)).Sub(origin)

	quad := [4]mgl32.Vec2{
		ConvertCoordinate(corner, frameSize),
		ConvertCoordinate(corner.Add(image.Pt(0, part.Size.Y)), frameSize),
		ConvertCoordinate(corner.Add(image.Pt(part.Size.X, 0)), frameSize),
		ConvertCoordinate(corner.Add(part.Size), frameSize),
	}

	topLeft, bottomLeft, topRight := quad[0], quad[1], quad[2]
	transform := mgl32.Translate3D(topLeft.X(), topLeft.Y(), 0).
		Mul4(mgl32.Scale3D(topRight.X()-topLeft.X(), bottomLeft.Y()-topLeft.Y(), 1))
	return quad, transform
}
