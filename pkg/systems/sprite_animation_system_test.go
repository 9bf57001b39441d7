package systems

import (
	"image"
	"math"
	"testing"

	"github.com/decker502/spriteanim/internal/act"
	"github.com/decker502/spriteanim/internal/spr"
	"github.com/decker502/spriteanim/pkg/animation"
	"github.com/decker502/spriteanim/pkg/components"
	"github.com/decker502/spriteanim/pkg/ecs"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// newTestAnimationData 合成一个 10x10 精灵、两帧动作的测试动画
func newTestAnimationData(t *testing.T) *animation.AnimationData {
	t.Helper()

	texture := ebiten.NewImage(21, 10)
	texture.Fill(image.White.C)

	pair := animation.AnimationPair{
		Path: "test/poring",
		Sprites: &spr.SpriteSet{
			PaletteImages: []spr.SpriteImage{{Width: 10, Height: 10}, {Width: 10, Height: 10}},
		},
		Actions: &act.ActionTable{
			Delays: []float32{1},
			Actions: []act.Action{{Motions: []act.Motion{
				{Clips: []act.SpriteClip{{SpriteNumber: 0}}},
				{Clips: []act.SpriteClip{{SpriteNumber: 1}}},
			}}},
		},
		Textures: []animation.TextureRegion{
			{Texture: texture, Rect: image.Rect(0, 0, 10, 10)},
			{Texture: texture, Rect: image.Rect(11, 0, 21, 10)},
		},
	}

	data, err := animation.Compose(animation.EntityKindMonster, animation.Behavior{}, []animation.AnimationPair{pair})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	return data
}

func TestSpriteAnimationSystem_Update(t *testing.T) {
	em := ecs.NewEntityManager()
	data := newTestAnimationData(t)

	id := em.CreateEntity()
	anim := &components.SpriteAnimationComponent{Data: data, State: animation.NewAnimationState(1000)}
	ecs.AddComponent(em, id, anim)

	idle := em.CreateEntity()
	empty := &components.SpriteAnimationComponent{Instructions: []animation.DrawInstruction{{}}}
	ecs.AddComponent(em, idle, empty)

	system := NewSpriteAnimationSystem(em)

	system.Update(1000)
	if len(anim.Instructions) != 1 || anim.Instructions[0].SpriteIndex != 0 {
		t.Fatalf("Expected first frame instruction, got %+v", anim.Instructions)
	}

	// delay 1 * 50ms per frame
	system.Update(1050)
	if anim.Instructions[0].SpriteIndex != 1 {
		t.Errorf("Expected second frame after 50ms, got sprite %d", anim.Instructions[0].SpriteIndex)
	}
	if anim.State.Time != 50 {
		t.Errorf("Expected elapsed time 50, got %d", anim.State.Time)
	}

	if empty.Instructions != nil {
		t.Error("Expected instructions cleared for an entity without data")
	}
}

func TestQuadVertices(t *testing.T) {
	data := newTestAnimationData(t)
	instructions := data.SelectFrame(animation.AnimationState{}, 0, 0)
	if len(instructions) != 1 {
		t.Fatalf("Expected 1 instruction, got %d", len(instructions))
	}
	base := instructions[0]

	assertVertex := func(t *testing.T, v ebiten.Vertex, dst, src mgl32.Vec2) {
		t.Helper()
		const epsilon = 1e-3
		if math.Abs(float64(v.DstX-dst.X())) > epsilon || math.Abs(float64(v.DstY-dst.Y())) > epsilon {
			t.Errorf("Expected dst %v, got (%v,%v)", dst, v.DstX, v.DstY)
		}
		if v.SrcX != src.X() || v.SrcY != src.Y() {
			t.Errorf("Expected src %v, got (%v,%v)", src, v.SrcX, v.SrcY)
		}
	}

	t.Run("plain", func(t *testing.T) {
		in := base
		vs := quadVertices(&in, mgl32.Vec2{100, 200}, 2)

		// part spans clip (-4,-4)..(6,6)
		assertVertex(t, vs[0], mgl32.Vec2{92, 192}, mgl32.Vec2{0, 0})
		assertVertex(t, vs[1], mgl32.Vec2{92, 212}, mgl32.Vec2{0, 10})
		assertVertex(t, vs[2], mgl32.Vec2{112, 192}, mgl32.Vec2{10, 0})
		assertVertex(t, vs[3], mgl32.Vec2{112, 212}, mgl32.Vec2{10, 10})
		if vs[0].ColorR != 1 || vs[0].ColorA != 1 {
			t.Errorf("Expected untinted vertices, got %+v", vs[0])
		}
	})

	t.Run("mirror", func(t *testing.T) {
		in := base
		in.Mirror = true
		vs := quadVertices(&in, mgl32.Vec2{}, 1)

		assertVertex(t, vs[0], mgl32.Vec2{-4, -4}, mgl32.Vec2{10, 0})
		assertVertex(t, vs[3], mgl32.Vec2{6, 6}, mgl32.Vec2{0, 10})
	})

	t.Run("rotation", func(t *testing.T) {
		in := base
		in.Angle = math.Pi / 2
		vs := quadVertices(&in, mgl32.Vec2{}, 1)

		// a quarter turn around (1,1) moves the top-left corner to (6,-4)
		assertVertex(t, vs[0], mgl32.Vec2{6, -4}, mgl32.Vec2{0, 0})
		assertVertex(t, vs[3], mgl32.Vec2{-4, 6}, mgl32.Vec2{10, 10})
	})

	t.Run("tint", func(t *testing.T) {
		in := base
		in.Color = animation.Color{Red: 1, Green: 0.5, Blue: 0, Alpha: 0.5}
		vs := quadVertices(&in, mgl32.Vec2{}, 1)

		if vs[0].ColorR != 0.5 || vs[0].ColorG != 0.25 || vs[0].ColorB != 0 || vs[0].ColorA != 0.5 {
			t.Errorf("Expected premultiplied tint, got %+v", vs[0])
		}
	})
}

func TestSpriteRenderSystem_Draw(t *testing.T) {
	em := ecs.NewEntityManager()
	data := newTestAnimationData(t)

	front := em.CreateEntity()
	back := em.CreateEntity()
	for id, y := range map[ecs.EntityID]float64{front: 300, back: 100} {
		ecs.AddComponent(em, id, &components.PositionComponent{X: 50, Y: y})
		ecs.AddComponent(em, id, &components.SpriteAnimationComponent{Data: data})
	}

	animSystem := NewSpriteAnimationSystem(em)
	animSystem.Update(0)

	render := NewSpriteRenderSystem(em)
	order := render.drawOrder()
	if len(order) != 2 || order[0] != back || order[1] != front {
		t.Errorf("Expected back-to-front order [%d %d], got %v", back, front, order)
	}

	screen := ebiten.NewImage(200, 400)
	render.Draw(screen)
}
