package animation

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// PixelsPerWorldUnit scales frame offsets into world-space anchor positions.
const PixelsPerWorldUnit = 10

// depthStep separates overlapping parts of one frame in depth.
const depthStep = 0.001

// defaultDelay is used when an action table carries no delays.
const defaultDelay float32 = 4

// DrawInstruction is everything a renderer needs to draw one frame part.
type DrawInstruction struct {
	Texture            *ebiten.Image
	TextureRect        image.Rectangle
	TextureCoordinates [4]mgl32.Vec2
	Transform          mgl32.Mat4

	// Position is the world-space anchor of the frame.
	Position mgl32.Vec2

	// Size is the pixel size of the whole frame.
	Size image.Point

	// Anchor and RemoveOffset locate the normalized frame in clip space.
	Anchor       image.Point
	RemoveOffset image.Point

	Angle       float32
	Color       Color
	Mirror      bool
	DepthOffset float32

	PairIndex   int
	SpriteIndex int
}

// ClipOrigin returns the clip-space position of the frame's top-left pixel.
// Clip space is the coordinate system of the action clips, with the entity
// standing at the origin.
func (in *DrawInstruction) ClipOrigin() image.Point {
	return in.Anchor.Sub(in.RemoveOffset).Sub(halfExtent(in.Size.Sub(in.RemoveOffset)))
}

// FramePixel maps a normalized frame coordinate back to a pixel position
// inside the frame rectangle. It inverts ConvertCoordinate.
func (in *DrawInstruction) FramePixel(coordinate mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(coordinate.X()/2 + 0.5) * float32(in.Size.X),
		(2 - coordinate.Y()) / 2 * float32(in.Size.Y),
	}
}

// wrap returns i modulo n in [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// AnimationIndex returns the animation slot for an action seen from a
// direction, before wrapping to the table size.
func AnimationIndex(action, cameraDirection, headDirection int) int {
	return action*DirectionCount + wrap(cameraDirection+headDirection, DirectionCount)
}

// Frame returns the frame shown for the state and view direction, together
// with the animation it belongs to. ok is false when there is nothing to show.
func (d *AnimationData) Frame(state *AnimationState, cameraDirection, headDirection int) (*Animation, *Frame, bool) {
	if d == nil || len(d.Animations) == 0 {
		return nil, nil, false
	}

	index := AnimationIndex(state.Action, cameraDirection, headDirection)
	animation := &d.Animations[wrap(index, len(d.Animations))]
	if len(animation.Frames) == 0 {
		return nil, nil, false
	}

	delay := defaultDelay
	if len(d.Delays) > 0 {
		delay = d.Delays[wrap(index, len(d.Delays))]
	}

	frameIndex := FrameIndex(state, delay, len(animation.Frames))
	if d.Behavior.suppressesIdle(state.Action) {
		frameIndex = 0
	}
	return animation, &animation.Frames[frameIndex], true
}

// SelectFrame picks the current frame and returns one draw instruction per
// part in draw order. Absent parts produce no instruction.
func (d *AnimationData) SelectFrame(state AnimationState, cameraDirection, headDirection int) []DrawInstruction {
	animation, frame, ok := d.Frame(&state, cameraDirection, headDirection)
	if !ok {
		return nil
	}

	// Anchored to the first frame so the entity does not drift between frames.
	anchor := animation.Frames[0].Offset
	position := mgl32.Vec2{
		float32(anchor.X),
		float32(anchor.Y + (frame.Size.Y-1)/2),
	}.Mul(1.0 / PixelsPerWorldUnit)

	instructions := make([]DrawInstruction, 0, len(frame.Parts))
	for index := range frame.Parts {
		part := &frame.Parts[index]
		if part.IsAbsent() || part.PairIndex >= len(d.Pairs) {
			continue
		}

		region, _ := d.Pairs[part.PairIndex].Region(part.SpriteIndex)
		instructions = append(instructions, DrawInstruction{
			Texture:            region.Texture,
			TextureRect:        region.Rect,
			TextureCoordinates: part.TextureCoordinates,
			Transform:          part.Transform,
			Position:           position,
			Size:               frame.Size,
			Anchor:             anchor,
			RemoveOffset:       frame.RemoveOffset,
			Angle:              part.Angle,
			Color:              part.Color,
			Mirror:             part.Mirror,
			DepthOffset:        depthStep * float32(index),
			PairIndex:          part.PairIndex,
			SpriteIndex:        part.SpriteIndex,
		})
	}
	return instructions
}
