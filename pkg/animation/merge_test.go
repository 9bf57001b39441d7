package animation

import (
	"image"
	"testing"
)

func TestMergeFrames_Empty(t *testing.T) {
	frame := MergeFrames(nil)

	if frame.Size != image.Pt(1, 1) {
		t.Errorf("Expected size (1,1), got %v", frame.Size)
	}
	if frame.Offset != (image.Point{}) {
		t.Errorf("Expected offset (0,0), got %v", frame.Offset)
	}
	if len(frame.Parts) != 1 {
		t.Fatalf("Expected exactly one part, got %d", len(frame.Parts))
	}

	part := frame.Parts[0]
	if !part.IsAbsent() {
		t.Error("Expected the placeholder part to be absent")
	}
	if part.Size != (image.Point{}) || part.Offset != (image.Point{}) || !part.Color.IsZero() {
		t.Errorf("Expected zero geometry and color, got %+v", part)
	}
}

func TestMergeFrames_SingleFrameKeepsGeometry(t *testing.T) {
	tests := []struct {
		offset image.Point
		size   image.Point
	}{
		{image.Pt(0, 0), image.Pt(100, 50)},
		{image.Pt(-7, 3), image.Pt(11, 6)},
		{image.Pt(5, -20), image.Pt(1, 1)},
	}

	for _, tt := range tests {
		frame := MergeFrames([]Frame{partFrame(tt.offset, tt.size, 0)})
		if frame.Offset != tt.offset || frame.Size != tt.size {
			t.Errorf("Merge of %v/%v changed geometry to %v/%v", tt.offset, tt.size, frame.Offset, frame.Size)
		}
	}
}

func TestMergeFrames_TwoClips(t *testing.T) {
	frame := MergeFrames([]Frame{
		partFrame(image.Pt(-10, 0), image.Pt(50, 50), 1),
		partFrame(image.Pt(10, 0), image.Pt(50, 50), 2),
	})

	// corners at x=-34 and x=-14, so the union spans -34..36
	if frame.Size != image.Pt(70, 50) {
		t.Errorf("Expected size (70,50), got %v", frame.Size)
	}
	if frame.Offset != image.Pt(0, 0) {
		t.Errorf("Expected offset (0,0), got %v", frame.Offset)
	}
	if frame.TopLeft != (image.Point{}) || frame.RemoveOffset != (image.Point{}) {
		t.Error("Expected TopLeft and RemoveOffset to be reset")
	}
}

func TestMergeFrames_OrderIndependentBounds(t *testing.T) {
	a := partFrame(image.Pt(-10, 4), image.Pt(20, 30), 1)
	b := partFrame(image.Pt(15, -8), image.Pt(9, 12), 2)
	c := partFrame(image.Pt(3, 30), image.Pt(40, 5), 3)

	permutations := [][]Frame{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}

	reference := MergeFrames(permutations[0])
	for i, frames := range permutations {
		merged := MergeFrames(frames)
		if merged.Size != reference.Size || merged.Offset != reference.Offset {
			t.Errorf("Permutation %d: expected %v/%v, got %v/%v",
				i, reference.Size, reference.Offset, merged.Size, merged.Offset)
		}

		for j := range frames {
			if merged.Parts[j].SpriteIndex != frames[j].Parts[0].SpriteIndex {
				t.Errorf("Permutation %d: part %d out of input order", i, j)
			}
		}
	}
}

func TestMergeFrames_DoesNotMutateInput(t *testing.T) {
	frames := []Frame{
		partFrame(image.Pt(-10, 0), image.Pt(50, 50), 1),
		partFrame(image.Pt(10, 0), image.Pt(50, 50), 2),
	}

	merged := MergeFrames(frames)
	merged.Parts[0].Offset = image.Pt(999, 999)

	if frames[0].TopLeft != (image.Point{}) {
		t.Error("Expected input TopLeft to stay untouched")
	}
	if frames[0].Parts[0].Offset != image.Pt(-10, 0) {
		t.Error("Expected merged parts to be copies of the input parts")
	}
}

func TestMergeFrames_NestedKeepsAllParts(t *testing.T) {
	body := MergeFrames([]Frame{
		partFrame(image.Pt(0, 0), image.Pt(10, 10), 1),
		partFrame(image.Pt(0, 10), image.Pt(10, 10), 2),
	})
	head := MergeFrames([]Frame{partFrame(image.Pt(0, -12), image.Pt(8, 8), 3)})

	merged := MergeFrames([]Frame{body, head})
	if len(merged.Parts) != 3 {
		t.Fatalf("Expected 3 parts, got %d", len(merged.Parts))
	}
	for i, want := range []int{1, 2, 3} {
		if merged.Parts[i].SpriteIndex != want {
			t.Errorf("Part %d: expected sprite %d, got %d", i, want, merged.Parts[i].SpriteIndex)
		}
	}
	// head corner y = -12-3 = -15, body bottom = 10-4+10 = 16
	if merged.Size.Y != 31 {
		t.Errorf("Expected height 31, got %d", merged.Size.Y)
	}
}
