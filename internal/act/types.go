// Package act provides the parsed action tables that drive sprite animations.
// An action table lists actions (idle, walk, attack, ...) for each of the eight
// view directions; every action is a sequence of motions, and every motion
// places one or more sprite clips plus optional attach points.
//
// The binary act format is decoded elsewhere; this package carries the decoded
// structures and a YAML rendition of them used by tools and tests.
package act

import "image"

// Sprite type discriminators. Palette images are enumerated before
// direct-color images in a sprite set.
const (
	SpriteTypePalette int32 = 0
	SpriteTypeRGBA    int32 = 1
)

// NoSprite marks a clip that places no image.
const NoSprite int32 = -1

// ActionTable is the root structure of one action file.
type ActionTable struct {
	// Actions is the ordered list of action-direction variants,
	// action*8 + direction.
	Actions []Action `yaml:"actions"`

	// Delays holds one frame delay per action-direction variant.
	Delays []float32 `yaml:"delays"`
}

// Action is an ordered sequence of motions.
type Action struct {
	Motions []Motion `yaml:"motions"`
}

// Motion is one step of an action. All clips of a motion are drawn together
// as a single picture.
type Motion struct {
	Clips []SpriteClip `yaml:"clips"`

	// AttachPoints holds the markers used to align dependent parts (a head
	// on a body). Usually zero or one entry.
	AttachPoints []AttachPoint `yaml:"attach_points,omitempty"`
}

// SpriteClip places a single sprite image inside a motion. Optional fields
// use pointer types; nil means the property is absent in the source data.
type SpriteClip struct {
	// SpriteNumber is the image index in the sprite set, or NoSprite.
	SpriteNumber int32 `yaml:"sprite"`

	// Position is the placement offset of the image center.
	Position image.Point `yaml:"position"`

	// MirrorOn flips the image horizontally when nonzero.
	MirrorOn int32 `yaml:"mirror,omitempty"`

	// Color is a packed tint, alpha<<24 | blue<<16 | green<<8 | red.
	Color *uint32 `yaml:"color,omitempty"`

	// Zoom scales both dimensions uniformly.
	Zoom *float32 `yaml:"zoom,omitempty"`

	// Zoom2 scales width and height independently. Ignored when Zoom is set.
	Zoom2 *[2]float32 `yaml:"zoom2,omitempty"`

	// Angle is the rotation of the image.
	Angle *int32 `yaml:"angle,omitempty"`

	// SpriteType selects the palette or direct-color image bank.
	SpriteType *int32 `yaml:"type,omitempty"`
}

// AttachPoint is a named marker coordinate inside a motion.
type AttachPoint struct {
	Position  image.Point `yaml:"position"`
	Attribute int32       `yaml:"attribute,omitempty"`
}

// HasSingleAttachPoint reports whether the motion declares exactly one
// attach point.
func (m *Motion) HasSingleAttachPoint() bool {
	return len(m.AttachPoints) == 1
}

// MotionAt returns the motion at the given action and motion index, or nil
// when the table has no such motion.
func (t *ActionTable) MotionAt(actionIndex, motionIndex int) *Motion {
	if t == nil || actionIndex < 0 || actionIndex >= len(t.Actions) {
		return nil
	}
	motions := t.Actions[actionIndex].Motions
	if motionIndex < 0 || motionIndex >= len(motions) {
		return nil
	}
	return &motions[motionIndex]
}
