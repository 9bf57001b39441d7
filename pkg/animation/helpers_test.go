package animation

import (
	"image"
	"math"
	"testing"

	"github.com/decker502/spriteanim/internal/act"
	"github.com/decker502/spriteanim/internal/spr"
	"github.com/go-gl/mathgl/mgl32"
)

func testSprites(palette []image.Point, rgba ...image.Point) *spr.SpriteSet {
	set := &spr.SpriteSet{}
	for _, size := range palette {
		set.PaletteImages = append(set.PaletteImages, spr.SpriteImage{Width: size.X, Height: size.Y})
	}
	for _, size := range rgba {
		set.RGBAImages = append(set.RGBAImages, spr.SpriteImage{Width: size.X, Height: size.Y})
	}
	return set
}

func clipAt(sprite int32, x, y int) act.SpriteClip {
	return act.SpriteClip{SpriteNumber: sprite, Position: image.Pt(x, y)}
}

func motionOf(clips ...act.SpriteClip) act.Motion {
	return act.Motion{Clips: clips}
}

func withAttach(m act.Motion, x, y int) act.Motion {
	m.AttachPoints = []act.AttachPoint{{Position: image.Pt(x, y)}}
	return m
}

func tableOf(delays []float32, actions ...[]act.Motion) *act.ActionTable {
	table := &act.ActionTable{Delays: delays}
	for _, motions := range actions {
		table.Actions = append(table.Actions, act.Action{Motions: motions})
	}
	return table
}

func partFrame(offset, size image.Point, sprite int) Frame {
	return singletonFrame(FramePart{SpriteIndex: sprite, Offset: offset, Size: size})
}

func assertVec2(t *testing.T, name string, got, want mgl32.Vec2) {
	t.Helper()
	const epsilon = 1e-5
	if math.Abs(float64(got.X()-want.X())) > epsilon || math.Abs(float64(got.Y()-want.Y())) > epsilon {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func ptr[T any](v T) *T {
	return &v
}
