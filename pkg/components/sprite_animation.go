package components

import "github.com/decker502/spriteanim/pkg/animation"

// SpriteAnimationComponent 保存一个由多组精灵/动作资源合成的动画实体
//
// Data 由 loader.AnimationLoader 返回，多个实体可共享同一份数据（只读）。
// State 是该实体独立的播放状态。
// Instructions 由 SpriteAnimationSystem 每帧刷新，供渲染系统使用。
type SpriteAnimationComponent struct {
	Data  *animation.AnimationData
	State animation.AnimationState

	// HeadDirection 头部相对身体的朝向偏移（0-2）
	HeadDirection int

	// Scale 渲染缩放，0 视为 1
	Scale float64

	Instructions []animation.DrawInstruction
}

// SetAction 切换动作；动作变化时从 clientTick 重新开始播放
func (c *SpriteAnimationComponent) SetAction(action int, clientTick uint32) {
	c.State.SetAction(action, clientTick)
}

// RenderScale 返回有效的渲染缩放
func (c *SpriteAnimationComponent) RenderScale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}
