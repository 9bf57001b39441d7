package animation

import (
	"fmt"
)

// Compose builds the animation table of one entity composition.
//
// Every motion of every pair is turned into a merged frame; the frames of
// all pairs at the same action and motion index are merged again, and the
// frames of each action are normalized. Action and motion counts follow the
// first pair; pairs with fewer actions or motions simply contribute nothing
// there. Delays are taken from the first pair.
//
// Parameters:
//   - kind: The entity kind, recorded on the result
//   - behavior: Roles and selection switches for the kind
//   - pairs: Sprite/action pairs in role order; Role is filled in from behavior
//
// Returns:
//   - *AnimationData: The immutable animation table
//   - error: ErrNoPairs, or ErrMalformedAsset when a clip references a
//     missing sprite image
func Compose(kind EntityKind, behavior Behavior, pairs []AnimationPair) (*AnimationData, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	behavior.Roles = append([]PartRole(nil), behavior.Roles...)

	owned := make([]AnimationPair, len(pairs))
	copy(owned, pairs)
	for i := range owned {
		if owned[i].Actions == nil || owned[i].Sprites == nil {
			return nil, fmt.Errorf("%w: pair %d (%s) has no sprite or action data",
				ErrMalformedAsset, i, owned[i].Path)
		}
		owned[i].Role = behavior.RoleFor(i)
	}

	// perPair[pair][action][motion]
	perPair := make([][][]Frame, len(owned))
	for p := range owned {
		frames, err := pairFrames(owned, &behavior, p)
		if err != nil {
			return nil, fmt.Errorf("pair %d (%s): %w", p, owned[p].Path, err)
		}
		perPair[p] = frames
	}

	primary := owned[0].Actions
	animations := make([]Animation, len(primary.Actions))
	for a := range primary.Actions {
		motionCount := len(primary.Actions[a].Motions)
		frames := make([]Frame, motionCount)
		for m := 0; m < motionCount; m++ {
			layers := make([]Frame, 0, len(perPair))
			for p := range perPair {
				if a < len(perPair[p]) && m < len(perPair[p][a]) {
					layers = append(layers, perPair[p][a][m])
				}
			}
			frames[m] = MergeFrames(layers)
		}
		animations[a] = Animation{Frames: NormalizeAction(frames)}
	}

	return &AnimationData{
		Pairs:      owned,
		Animations: animations,
		Delays:     append([]float32(nil), primary.Delays...),
		Kind:       kind,
		Behavior:   behavior,
	}, nil
}

// pairFrames builds one merged frame per motion of a single pair.
func pairFrames(pairs []AnimationPair, behavior *Behavior, pairIndex int) ([][]Frame, error) {
	pair := &pairs[pairIndex]
	actions := make([][]Frame, len(pair.Actions.Actions))
	for a := range pair.Actions.Actions {
		motions := pair.Actions.Actions[a].Motions
		frames := make([]Frame, len(motions))
		for m := range motions {
			shift := attachShift(pairs, behavior, pairIndex, a, m, &motions[m])
			frame, err := motionFrame(&motions[m], pairIndex, pair.Sprites, shift)
			if err != nil {
				return nil, fmt.Errorf("action %d motion %d: %w", a, m, err)
			}
			frames[m] = frame
		}
		actions[a] = frames
	}
	return actions, nil
}
