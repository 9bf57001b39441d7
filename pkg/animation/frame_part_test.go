package animation

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/decker502/spriteanim/internal/act"
)

func TestNewFramePart_SkipsNoSprite(t *testing.T) {
	sprites := testSprites([]image.Point{{10, 10}})
	clip := clipAt(act.NoSprite, 4, 4)

	_, ok, err := NewFramePart(&clip, 0, sprites, image.Point{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Expected clip with sprite -1 to be dropped")
	}
}

func TestNewFramePart_Resolution(t *testing.T) {
	sprites := testSprites([]image.Point{{40, 60}, {10, 12}}, image.Pt(8, 4), image.Pt(33, 21))

	tests := []struct {
		name       string
		clip       act.SpriteClip
		shift      image.Point
		wantIndex  int
		wantSize   image.Point
		wantOffset image.Point
	}{
		{
			name:       "plain palette image",
			clip:       clipAt(1, 3, -4),
			wantIndex:  1,
			wantSize:   image.Pt(10, 12),
			wantOffset: image.Pt(3, -4),
		},
		{
			name:       "direct-color image is offset by palette count",
			clip:       act.SpriteClip{SpriteNumber: 1, SpriteType: ptr(act.SpriteTypeRGBA)},
			wantIndex:  3,
			wantSize:   image.Pt(33, 21),
			wantOffset: image.Pt(0, 0),
		},
		{
			name:       "uniform zoom rounds down",
			clip:       act.SpriteClip{SpriteNumber: 3, Zoom: ptr(float32(1.5))},
			wantIndex:  3,
			wantSize:   image.Pt(12, 6),
			wantOffset: image.Pt(0, 0),
		},
		{
			name:       "per-axis zoom",
			clip:       act.SpriteClip{SpriteNumber: 0, Zoom2: &[2]float32{0.5, 0.25}},
			wantIndex:  0,
			wantSize:   image.Pt(20, 15),
			wantOffset: image.Pt(0, 0),
		},
		{
			name:       "uniform zoom wins over per-axis zoom",
			clip:       act.SpriteClip{SpriteNumber: 0, Zoom: ptr(float32(2)), Zoom2: &[2]float32{0.5, 0.5}},
			wantIndex:  0,
			wantSize:   image.Pt(80, 120),
			wantOffset: image.Pt(0, 0),
		},
		{
			name:       "shift is added to the position",
			clip:       clipAt(0, 5, 5),
			shift:      image.Pt(-2, 7),
			wantIndex:  0,
			wantSize:   image.Pt(40, 60),
			wantOffset: image.Pt(3, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, ok, err := NewFramePart(&tt.clip, 1, sprites, tt.shift)
			if err != nil || !ok {
				t.Fatalf("Expected a part, got ok=%v err=%v", ok, err)
			}
			if part.PairIndex != 1 {
				t.Errorf("Expected pair index 1, got %d", part.PairIndex)
			}
			if part.SpriteIndex != tt.wantIndex {
				t.Errorf("Expected sprite index %d, got %d", tt.wantIndex, part.SpriteIndex)
			}
			if part.Size != tt.wantSize {
				t.Errorf("Expected size %v, got %v", tt.wantSize, part.Size)
			}
			if part.Offset != tt.wantOffset {
				t.Errorf("Expected offset %v, got %v", tt.wantOffset, part.Offset)
			}
		})
	}
}

func TestNewFramePart_AngleColorMirror(t *testing.T) {
	sprites := testSprites([]image.Point{{10, 10}})
	clip := act.SpriteClip{
		SpriteNumber: 0,
		Angle:        ptr(int32(90)),
		Color:        ptr(uint32(0x80FF4000)),
		MirrorOn:     2,
	}

	part, _, err := NewFramePart(&clip, 0, sprites, image.Point{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(float64(part.Angle)-math.Pi/2) > 1e-6 {
		t.Errorf("Expected angle pi/2, got %v", part.Angle)
	}
	if !part.Mirror {
		t.Error("Expected nonzero mirror flag to mirror")
	}

	want := Color{Red: 0, Green: 64.0 / 255, Blue: 1, Alpha: 128.0 / 255}
	if part.Color != want {
		t.Errorf("Expected color %+v, got %+v", want, part.Color)
	}
}

func TestNewFramePart_Defaults(t *testing.T) {
	sprites := testSprites([]image.Point{{10, 10}})
	clip := clipAt(0, 0, 0)

	part, _, _ := NewFramePart(&clip, 0, sprites, image.Point{})
	if part.Angle != 0 || part.Mirror || !part.Color.IsZero() {
		t.Errorf("Expected no rotation, mirror or tint, got %+v", part)
	}
}

func TestNewFramePart_OutOfRange(t *testing.T) {
	sprites := testSprites([]image.Point{{10, 10}})
	clip := clipAt(4, 0, 0)

	_, _, err := NewFramePart(&clip, 0, sprites, image.Point{})
	if !errors.Is(err, ErrMalformedAsset) {
		t.Errorf("Expected ErrMalformedAsset, got %v", err)
	}
}

func TestUnpackColor(t *testing.T) {
	c := UnpackColor(0xFF0000FF)
	if c.Red != 1 || c.Green != 0 || c.Blue != 0 || c.Alpha != 1 {
		t.Errorf("Expected opaque red, got %+v", c)
	}
	if !UnpackColor(0).IsZero() {
		t.Error("Expected zero to unpack to transparent black")
	}
}
