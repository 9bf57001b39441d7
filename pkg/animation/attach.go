package animation

import (
	"image"

	"github.com/decker502/spriteanim/internal/act"
)

// AttachOffset returns the shift that moves a dependent motion onto its
// parent motion: parent attach point minus own attach point. It applies only
// when the motion declares exactly one attach point and the parent motion
// declares at least one.
func AttachOffset(motion, parent *act.Motion) (image.Point, bool) {
	if motion == nil || parent == nil {
		return image.Point{}, false
	}
	if !motion.HasSingleAttachPoint() || len(parent.AttachPoints) == 0 {
		return image.Point{}, false
	}
	return parent.AttachPoints[0].Position.Sub(motion.AttachPoints[0].Position), true
}

// attachShift resolves the attach offset for one motion of one pair, looking
// up the parent pair's motion at the same action and motion index.
func attachShift(pairs []AnimationPair, behavior *Behavior, pairIndex, actionIndex, motionIndex int, motion *act.Motion) image.Point {
	parentIndex, ok := behavior.ParentIndex(pairIndex)
	if !ok || parentIndex >= len(pairs) {
		return image.Point{}
	}
	parent := pairs[parentIndex].Actions.MotionAt(actionIndex, motionIndex)
	shift, _ := AttachOffset(motion, parent)
	return shift
}
