package atlas

import (
	"image"
	"testing"
)

func TestPacker_Pack(t *testing.T) {
	tests := []struct {
		name       string
		maxWidth   int
		sizes      []image.Point
		wantRects  []image.Rectangle
		wantExtent image.Point
	}{
		{
			name:       "empty",
			maxWidth:   64,
			wantRects:  []image.Rectangle{},
			wantExtent: image.Point{},
		},
		{
			name:     "one shelf with padding",
			maxWidth: 64,
			sizes:    []image.Point{{10, 20}, {5, 5}},
			wantRects: []image.Rectangle{
				image.Rect(0, 0, 10, 20),
				image.Rect(11, 0, 16, 5),
			},
			wantExtent: image.Pt(16, 20),
		},
		{
			name:     "wraps to next shelf",
			maxWidth: 20,
			sizes:    []image.Point{{10, 20}, {12, 4}, {3, 3}},
			wantRects: []image.Rectangle{
				image.Rect(0, 0, 10, 20),
				image.Rect(0, 21, 12, 25),
				image.Rect(13, 21, 16, 24),
			},
			wantExtent: image.Pt(16, 25),
		},
		{
			name:     "oversized image gets its own shelf",
			maxWidth: 8,
			sizes:    []image.Point{{30, 2}, {4, 4}},
			wantRects: []image.Rectangle{
				image.Rect(0, 0, 30, 2),
				image.Rect(0, 3, 4, 7),
			},
			wantExtent: image.Pt(30, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects, extent := NewPacker(tt.maxWidth).Pack(tt.sizes)
			if extent != tt.wantExtent {
				t.Errorf("Expected extent %v, got %v", tt.wantExtent, extent)
			}
			if len(rects) != len(tt.wantRects) {
				t.Fatalf("Expected %d rects, got %d", len(tt.wantRects), len(rects))
			}
			for i := range rects {
				if rects[i] != tt.wantRects[i] {
					t.Errorf("Rect %d: expected %v, got %v", i, tt.wantRects[i], rects[i])
				}
			}
		})
	}
}

func TestPacker_NoOverlap(t *testing.T) {
	sizes := []image.Point{{7, 3}, {9, 9}, {2, 11}, {15, 1}, {4, 4}, {8, 6}, {1, 1}}
	rects, _ := NewPacker(24).Pack(sizes)

	for i := range rects {
		if rects[i].Size() != sizes[i] {
			t.Errorf("Rect %d: expected size %v, got %v", i, sizes[i], rects[i].Size())
		}
		padded := image.Rectangle{Min: rects[i].Min, Max: rects[i].Max.Add(image.Pt(1, 1))}
		for j := i + 1; j < len(rects); j++ {
			if padded.Overlaps(rects[j]) {
				t.Errorf("Rects %d and %d overlap: %v %v", i, j, rects[i], rects[j])
			}
		}
	}
}
