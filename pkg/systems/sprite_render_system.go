package systems

import (
	"slices"

	"github.com/decker502/spriteanim/pkg/animation"
	"github.com/decker502/spriteanim/pkg/components"
	"github.com/decker502/spriteanim/pkg/ecs"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// quadIndices 两个三角形组成一个矩形：tl, bl, tr / bl, br, tr
var quadIndices = []uint16{0, 1, 2, 1, 3, 2}

// SpriteRenderSystem 使用 DrawTriangles 绘制精灵动画实体
//
// 实体按 Y 坐标从上到下绘制，同一实体内按绘制指令顺序（后绘制的在上层）。
type SpriteRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpriteRenderSystem 创建精灵渲染系统
func NewSpriteRenderSystem(em *ecs.EntityManager) *SpriteRenderSystem {
	return &SpriteRenderSystem{
		entityManager: em,
	}
}

// Draw 绘制所有拥有位置和精灵动画组件的实体
func (s *SpriteRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range s.drawOrder() {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		anim, _ := ecs.GetComponent[*components.SpriteAnimationComponent](s.entityManager, id)

		base := mgl32.Vec2{float32(pos.X), float32(pos.Y)}
		scale := float32(anim.RenderScale())
		for i := range anim.Instructions {
			in := &anim.Instructions[i]
			if in.Texture == nil || in.TextureRect.Empty() {
				continue
			}
			vs := quadVertices(in, base, scale)
			screen.DrawTriangles(vs[:], quadIndices, in.Texture, nil)
		}
	}
}

// drawOrder 返回按 Y 坐标排序的实体（Y 相同按 ID）
func (s *SpriteRenderSystem) drawOrder() []ecs.EntityID {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.SpriteAnimationComponent](s.entityManager)

	slices.SortStableFunc(entities, func(a, b ecs.EntityID) int {
		pa, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, a)
		pb, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, b)
		switch {
		case pa.Y < pb.Y:
			return -1
		case pa.Y > pb.Y:
			return 1
		default:
			return 0
		}
	})
	return entities
}

// quadVertices 计算一条绘制指令的四个顶点（tl, bl, tr, br）
//
// 纹理坐标先还原为帧内像素，再加上帧左上角在动作坐标系中的位置，
// 得到相对角色脚下锚点的偏移，最后缩放并平移到屏幕位置。
// 旋转围绕部件中心进行，镜像通过交换左右纹理坐标实现。
func quadVertices(in *animation.DrawInstruction, base mgl32.Vec2, scale float32) [4]ebiten.Vertex {
	origin := in.ClipOrigin()
	clipOrigin := mgl32.Vec2{float32(origin.X), float32(origin.Y)}

	var corners [4]mgl32.Vec2
	for i, coordinate := range in.TextureCoordinates {
		corners[i] = in.FramePixel(coordinate).Add(clipOrigin)
	}

	if in.Angle != 0 {
		center := corners[0].Add(corners[3]).Mul(0.5)
		rotation := mgl32.Rotate2D(in.Angle)
		for i := range corners {
			corners[i] = rotation.Mul2x1(corners[i].Sub(center)).Add(center)
		}
	}

	rect := in.TextureRect
	left, right := float32(rect.Min.X), float32(rect.Max.X)
	if in.Mirror {
		left, right = right, left
	}
	src := [4]mgl32.Vec2{
		{left, float32(rect.Min.Y)},
		{left, float32(rect.Max.Y)},
		{right, float32(rect.Min.Y)},
		{right, float32(rect.Max.Y)},
	}

	r, g, b, a := tint(in.Color)
	var vs [4]ebiten.Vertex
	for i := range vs {
		dst := corners[i].Mul(scale).Add(base)
		vs[i] = ebiten.Vertex{
			DstX:   dst.X(),
			DstY:   dst.Y(),
			SrcX:   src[i].X(),
			SrcY:   src[i].Y(),
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	return vs
}

// tint 将部件颜色转换为顶点颜色；零值表示不着色
// 顶点颜色使用预乘 alpha
func tint(c animation.Color) (float32, float32, float32, float32) {
	if c.IsZero() {
		return 1, 1, 1, 1
	}
	alpha := min(c.Alpha, 1)
	return c.Red * alpha, c.Green * alpha, c.Blue * alpha, alpha
}
