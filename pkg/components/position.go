package components

// PositionComponent 实体在屏幕上的位置（像素）
// 精灵动画以该点作为角色脚下的锚点
type PositionComponent struct {
	X, Y float64
}
