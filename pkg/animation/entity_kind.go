package animation

import "fmt"

// EntityKind names the kind of entity an animation belongs to.
type EntityKind string

const (
	EntityKindPlayer  EntityKind = "player"
	EntityKindMonster EntityKind = "monster"
	EntityKindNpc     EntityKind = "npc"
)

// PartRole tags a contributing pair. A role with AttachTo set is aligned to
// the pair carrying the parent role through matching attach points.
type PartRole struct {
	Name     string
	AttachTo string
}

// Behavior holds the per-entity-kind switches of the composition and
// selection algorithms.
type Behavior struct {
	// SuppressIdleAnimation pins IdleAction to its first frame.
	SuppressIdleAnimation bool
	IdleAction            int

	// Roles are assigned to pairs by position.
	Roles []PartRole
}

// RoleFor returns the role of the pair at pairIndex. Pairs beyond the
// configured roles get an unattached role.
func (b *Behavior) RoleFor(pairIndex int) PartRole {
	if pairIndex >= 0 && pairIndex < len(b.Roles) {
		return b.Roles[pairIndex]
	}
	return PartRole{Name: fmt.Sprintf("part%d", pairIndex)}
}

// ParentIndex returns the pair index the pair at pairIndex attaches to.
func (b *Behavior) ParentIndex(pairIndex int) (int, bool) {
	role := b.RoleFor(pairIndex)
	if role.AttachTo == "" {
		return 0, false
	}
	for i, candidate := range b.Roles {
		if i != pairIndex && candidate.Name == role.AttachTo {
			return i, true
		}
	}
	return 0, false
}

func (b *Behavior) suppressesIdle(action int) bool {
	return b.SuppressIdleAnimation && action == b.IdleAction
}
