package systems

import (
	"github.com/decker502/spriteanim/pkg/components"
	"github.com/decker502/spriteanim/pkg/ecs"
)

// SpriteAnimationSystem 推进所有精灵动画实体的播放时间并刷新绘制指令
type SpriteAnimationSystem struct {
	entityManager *ecs.EntityManager

	// CameraDirection 相机朝向（0-7），与实体头部朝向一起决定显示哪个方向的动画
	CameraDirection int
}

// NewSpriteAnimationSystem 创建精灵动画系统
func NewSpriteAnimationSystem(em *ecs.EntityManager) *SpriteAnimationSystem {
	return &SpriteAnimationSystem{
		entityManager: em,
	}
}

// Update 将所有动画推进到 clientTick（毫秒）并重新选择当前帧
func (s *SpriteAnimationSystem) Update(clientTick uint32) {
	entities := ecs.GetEntitiesWith1[*components.SpriteAnimationComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.SpriteAnimationComponent](s.entityManager, id)
		if anim.Data == nil {
			anim.Instructions = nil
			continue
		}

		anim.State.Update(clientTick)
		anim.Instructions = anim.Data.SelectFrame(anim.State, s.CameraDirection, anim.HeadDirection)
	}
}
