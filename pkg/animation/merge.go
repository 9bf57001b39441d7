package animation

import "image"

var one = image.Pt(1, 1)

// halfExtent returns (size - (1,1)) / 2, the distance from a center anchor
// to the top-left corner.
func halfExtent(size image.Point) image.Point {
	return size.Sub(one).Div(2)
}

// topLeft converts a center-anchored frame into its top-left corner.
func topLeft(f *Frame) image.Point {
	return f.Offset.Sub(halfExtent(f.Size))
}

// placeholderFrame is the 1x1 frame produced for motions without any image.
func placeholderFrame() Frame {
	return Frame{
		Size:  one,
		Parts: []FramePart{AbsentFramePart()},
	}
}

// MergeFrames combines frames into one frame whose rectangle is the union of
// the inputs. Parts are concatenated in input order, which is draw order.
// An empty input yields a 1x1 placeholder frame holding one absent part.
// The inputs are not modified.
func MergeFrames(frames []Frame) Frame {
	if len(frames) == 0 {
		return placeholderFrame()
	}

	var (
		minCorner image.Point
		maxCorner image.Point
		partCount int
	)
	for i := range frames {
		corner := topLeft(&frames[i])
		far := corner.Add(frames[i].Size)
		if i == 0 {
			minCorner, maxCorner = corner, far
		} else {
			minCorner.X = min(minCorner.X, corner.X)
			minCorner.Y = min(minCorner.Y, corner.Y)
			maxCorner.X = max(maxCorner.X, far.X)
			maxCorner.Y = max(maxCorner.Y, far.Y)
		}
		partCount += len(frames[i].Parts)
	}

	parts := make([]FramePart, 0, partCount)
	for i := range frames {
		parts = append(parts, frames[i].Parts...)
	}

	size := maxCorner.Sub(minCorner)
	return Frame{
		Offset: minCorner.Add(halfExtent(size)),
		Size:   size,
		Parts:  parts,
	}
}
