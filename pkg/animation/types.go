// Package animation composes sprite/action pairs into per-action frame tables
// and selects the frame to draw at render time.
//
// The pipeline is pure: sprite clips become frame parts, the parts of one
// motion are merged into a bounding frame, the frames of all pairs are merged
// per motion, and the frames of each action are normalized to one shared
// rectangle so playback does not jitter.
package animation

import (
	"image"
	"math"

	"github.com/decker502/spriteanim/internal/act"
	"github.com/decker502/spriteanim/internal/spr"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// DirectionCount is the number of view directions every action is authored for.
const DirectionCount = 8

// absentIndex marks a frame part that references no image.
const absentIndex = math.MaxInt

// Color is a tint with normalized channels. The zero value (transparent
// black) means no tint.
type Color struct {
	Red   float32
	Green float32
	Blue  float32
	Alpha float32
}

// IsZero reports whether the color is the "no tint" value.
func (c Color) IsZero() bool {
	return c == Color{}
}

// UnpackColor converts a packed clip color, alpha<<24 | blue<<16 | green<<8 | red,
// into normalized channels.
func UnpackColor(packed uint32) Color {
	return Color{
		Red:   float32(packed&0xFF) / 255,
		Green: float32((packed>>8)&0xFF) / 255,
		Blue:  float32((packed>>16)&0xFF) / 255,
		Alpha: float32((packed>>24)&0xFF) / 255,
	}
}

// FramePart is one positioned, tinted and rotated sprite image.
type FramePart struct {
	PairIndex   int
	SpriteIndex int
	Offset      image.Point
	Size        image.Point
	Mirror      bool
	Angle       float32
	Color       Color

	// TextureCoordinates holds the quad corners in normalized frame space:
	// top-left, bottom-left, top-right, bottom-right.
	TextureCoordinates [4]mgl32.Vec2

	// Transform maps the unit quad onto TextureCoordinates.
	Transform mgl32.Mat4
}

// AbsentFramePart returns the sentinel part used by placeholder frames.
func AbsentFramePart() FramePart {
	return FramePart{
		PairIndex:   absentIndex,
		SpriteIndex: absentIndex,
	}
}

// IsAbsent reports whether the part references no image and must not be drawn.
func (p *FramePart) IsAbsent() bool {
	return p.PairIndex == absentIndex || p.SpriteIndex == absentIndex
}

// Frame is a set of frame parts plus the rectangle containing them all.
type Frame struct {
	// Offset is the center anchor of the rectangle.
	Offset image.Point

	// TopLeft is derived from Offset and Size; zero until normalization.
	TopLeft image.Point

	Size image.Point

	// RemoveOffset is the shift applied by normalization.
	RemoveOffset image.Point

	// Parts are in draw order; later parts are drawn on top.
	Parts []FramePart
}

// Animation is the ordered frame list of one action-direction variant.
type Animation struct {
	Frames []Frame
}

// TextureRegion locates one sprite image inside a texture.
type TextureRegion struct {
	Texture *ebiten.Image
	Rect    image.Rectangle
}

// AnimationPair is one contributing body part: a sprite set with its action
// table and the texture regions of its images.
type AnimationPair struct {
	Path     string
	Role     PartRole
	Sprites  *spr.SpriteSet
	Actions  *act.ActionTable
	Textures []TextureRegion
}

// Region returns the texture region of a sprite image.
func (p *AnimationPair) Region(spriteIndex int) (TextureRegion, bool) {
	if spriteIndex < 0 || spriteIndex >= len(p.Textures) {
		return TextureRegion{}, false
	}
	return p.Textures[spriteIndex], true
}

// AnimationData is the composed animation table of one entity composition.
// It is never mutated after Compose returns and may be shared freely.
type AnimationData struct {
	Pairs      []AnimationPair
	Animations []Animation
	Delays     []float32
	Kind       EntityKind
	Behavior   Behavior
}
