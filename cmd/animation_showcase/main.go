// cmd/animation_showcase/main.go
// 精灵动画预览工具
//
// 用法：
//   go run ./cmd/animation_showcase --assets=assets --kind=player --parts=human/body,human/head
//   go run ./cmd/animation_showcase --pack=assets.res --showcase=cmd/animation_showcase/showcase.yaml

package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/decker502/spriteanim/pkg/animation"
	"github.com/decker502/spriteanim/pkg/atlas"
	"github.com/decker502/spriteanim/pkg/components"
	"github.com/decker502/spriteanim/pkg/config"
	"github.com/decker502/spriteanim/pkg/ecs"
	"github.com/decker502/spriteanim/pkg/loader"
	"github.com/decker502/spriteanim/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	bolt "go.etcd.io/bbolt"
)

var (
	assetsDir    = flag.String("assets", "assets", "资源目录（*.spr.yaml / *.act.yaml）")
	packPath     = flag.String("pack", "", "bbolt 资源包路径（设置后忽略 --assets，且不支持热重载）")
	kindFlag     = flag.String("kind", "", "实体类型（player / monster / npc）")
	partsFlag    = flag.String("parts", "", "逗号分隔的部件资源路径")
	configPath   = flag.String("config", "", "动画合成配置文件路径（为空时使用内置配置）")
	showcasePath = flag.String("showcase", "", "预览布局配置文件路径")
	verbose      = flag.Bool("verbose", false, "详细日志")
)

// showcaseEntry 一个网格单元中展示的实体
type showcaseEntry struct {
	config EntityConfig
	id     ecs.EntityID
	err    error
}

// Game 主游戏结构
type Game struct {
	layout *ShowcaseConfig

	entityManager *ecs.EntityManager
	animSystem    *systems.SpriteAnimationSystem
	renderSystem  *systems.SpriteRenderSystem

	loader   *loader.AnimationLoader
	watcher  *loader.Watcher
	settings *config.ViewerSettingsManager

	entries  []*showcaseEntry
	selected int
	showHelp bool
	start    time.Time
}

// NewGame 创建游戏实例
func NewGame(layout *ShowcaseConfig, animLoader *loader.AnimationLoader, watcher *loader.Watcher, settings *config.ViewerSettingsManager) *Game {
	em := ecs.NewEntityManager()
	g := &Game{
		layout:        layout,
		entityManager: em,
		animSystem:    systems.NewSpriteAnimationSystem(em),
		renderSystem:  systems.NewSpriteRenderSystem(em),
		loader:        animLoader,
		watcher:       watcher,
		settings:      settings,
		showHelp:      true,
		start:         time.Now(),
	}

	last := settings.GetSettings()
	g.animSystem.CameraDirection = last.Direction

	for i, entity := range layout.Entities {
		entry := &showcaseEntry{config: entity}
		g.entries = append(g.entries, entry)
		g.spawn(i, entry)

		if entity.Kind == last.Kind && slices.Equal(entity.Parts, last.Parts) {
			g.selected = i
			if anim := g.component(entry); anim != nil {
				anim.SetAction(last.Action, g.clientTick())
				anim.HeadDirection = last.HeadDirection
			}
		}
	}
	return g
}

// clientTick 返回启动以来的毫秒数
func (g *Game) clientTick() uint32 {
	return uint32(time.Since(g.start).Milliseconds())
}

// spawn 加载实体组合并创建实体；加载失败时只记录错误，单元显示错误信息
func (g *Game) spawn(index int, entry *showcaseEntry) {
	data, err := g.loader.Get(animation.EntityKind(entry.config.Kind), entry.config.Parts)
	if err != nil {
		entry.err = err
		log.Printf("警告: 无法加载 %s: %v", entry.config.Name, err)
		return
	}
	entry.err = nil

	x, y := g.layout.CellAnchor(index)
	entry.id = g.entityManager.CreateEntity()
	ecs.AddComponent(g.entityManager, entry.id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(g.entityManager, entry.id, &components.SpriteAnimationComponent{
		Data:  data,
		State: animation.NewAnimationState(g.clientTick()),
		Scale: entry.config.Scale,
	})
	if *verbose {
		log.Printf("  ✓ 加载: %s (%d 个动画)", entry.config.Name, len(data.Animations))
	}
}

// reload 重新加载使用了 path 的实体
// 旧实体标记删除，新实体沿用其动作、头部朝向和播放起点
func (g *Game) reload(path string) {
	g.loader.Invalidate(path)

	for i, entry := range g.entries {
		if !slices.Contains(entry.config.Parts, path) {
			continue
		}

		old := g.component(entry)
		if entry.id != 0 {
			g.entityManager.DestroyEntity(entry.id)
			entry.id = 0
		}

		g.spawn(i, entry)
		if old == nil {
			continue
		}
		if anim := g.component(entry); anim != nil {
			anim.State = old.State
			anim.HeadDirection = old.HeadDirection
		}
	}

	if removed := g.entityManager.RemoveMarkedEntities(); removed > 0 && *verbose {
		log.Printf("  ↻ 重新加载 %s: 替换 %d 个实体", path, removed)
	}
}

func (g *Game) component(entry *showcaseEntry) *components.SpriteAnimationComponent {
	if entry.id == 0 {
		return nil
	}
	anim, _ := ecs.GetComponent[*components.SpriteAnimationComponent](g.entityManager, entry.id)
	return anim
}

// Update 更新游戏状态
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.watcher != nil {
		g.watcher.Drain(g.reload)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.entries) > 0 {
		g.selected = (g.selected + 1) % len(g.entries)
		g.settings.SetComposition(g.entries[g.selected].config.Kind, g.entries[g.selected].config.Parts)
		g.saveSelection()
	}

	tick := g.clientTick()
	if g.handleSelectionKeys(tick) {
		g.saveSelection()
	}

	g.animSystem.Update(tick)
	return nil
}

// handleSelectionKeys 处理动作、朝向切换；返回是否有变化
func (g *Game) handleSelectionKeys(tick uint32) bool {
	changed := false

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.animSystem.CameraDirection = (g.animSystem.CameraDirection + 1) % animation.DirectionCount
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.animSystem.CameraDirection = (g.animSystem.CameraDirection + animation.DirectionCount - 1) % animation.DirectionCount
		changed = true
	}

	if len(g.entries) == 0 {
		return changed
	}
	anim := g.component(g.entries[g.selected])
	if anim == nil {
		return changed
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		anim.SetAction(anim.State.Action+1, tick)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && anim.State.Action > 0 {
		anim.SetAction(anim.State.Action-1, tick)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		anim.HeadDirection = (anim.HeadDirection + 1) % 3
		changed = true
	}
	return changed
}

// saveSelection 持久化当前选择
func (g *Game) saveSelection() {
	action, head := 0, 0
	if len(g.entries) > 0 {
		if anim := g.component(g.entries[g.selected]); anim != nil {
			action, head = anim.State.Action, anim.HeadDirection
		}
	}

	g.settings.SetSelection(action, g.animSystem.CameraDirection, head)
	if err := g.settings.Save(); err != nil {
		log.Printf("警告: 保存设置失败: %v", err)
	}
}

// Draw 绘制游戏画面
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{50, 50, 50, 255})

	g.renderSystem.Draw(screen)

	for i, entry := range g.entries {
		x, y := g.layout.CellAnchor(i)
		cellX := int(x) - g.layout.Grid.CellWidth/2
		cellY := int(y) - g.layout.Grid.CellHeight*3/4

		label := entry.config.Name
		if i == g.selected {
			label = "> " + label
		}
		if anim := g.component(entry); anim != nil {
			label += fmt.Sprintf("\naction %d head %d", anim.State.Action, anim.HeadDirection)
		}
		if entry.err != nil {
			label += "\n" + shortError(entry.err)
		}
		ebitenutil.DebugPrintAt(screen, label, cellX+8, cellY+8)
	}

	info := fmt.Sprintf("TPS: %.1f | 方向: %d | 缓存: %d", ebiten.ActualTPS(), g.animSystem.CameraDirection, g.loader.CachedCount())
	ebitenutil.DebugPrintAt(screen, info, 10, g.layout.Window.Height-20)

	if g.showHelp {
		help := strings.Join([]string{
			"Tab  next entity",
			"Up/Down  action",
			"Left/Right  direction",
			"H  head direction",
			"F1  help",
			"Esc  quit",
		}, "\n")
		ebitenutil.DebugPrintAt(screen, help, g.layout.Window.Width-190, 10)
	}
}

// shortError 将错误归类为简短提示
func shortError(err error) string {
	switch {
	case errors.Is(err, loader.ErrAssetNotFound):
		return "asset not found"
	case errors.Is(err, loader.ErrMalformedAsset):
		return "malformed asset"
	case errors.Is(err, loader.ErrUnknownEntityKind):
		return "unknown entity kind"
	default:
		return "load failed"
	}
}

// Layout 设置窗口布局
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Window.Width, g.layout.Window.Height
}

func main() {
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	log.Println("=== 精灵动画预览启动 ===")

	layout, err := LoadConfig(*showcasePath)
	if err != nil {
		log.Fatalf("加载布局配置失败: %v", err)
	}

	var animConfig *config.AnimationConfig
	if *configPath != "" {
		animConfig, err = config.LoadAnimationConfig(*configPath)
		if err != nil {
			log.Fatalf("加载动画配置失败: %v", err)
		}
	}
	configs, err := config.NewAnimationConfigManager(animConfig)
	if err != nil {
		log.Fatalf("初始化动画配置失败: %v", err)
	}

	source, watcher, closeSource := openSource()
	defer closeSource()

	animLoader, err := loader.NewAnimationLoader(source, atlas.NewProvider(), configs)
	if err != nil {
		log.Fatalf("初始化加载器失败: %v", err)
	}

	settings := config.NewViewerSettingsManager(openStorage())
	if *kindFlag != "" && *partsFlag != "" {
		settings.SetComposition(*kindFlag, strings.Split(*partsFlag, ","))
	}
	last := settings.GetSettings()
	if len(last.Parts) > 0 && !hasEntity(layout, last.Kind, last.Parts) {
		layout.Entities = append([]EntityConfig{{
			Name:  last.Kind + ": " + strings.Join(last.Parts, ","),
			Kind:  last.Kind,
			Parts: last.Parts,
			Scale: layout.Playback.Scale,
		}}, layout.Entities...)
	}
	if len(layout.Entities) == 0 {
		log.Fatalf("没有要展示的实体：请使用 --kind/--parts 或 --showcase 指定")
	}

	game := NewGame(layout, animLoader, watcher, settings)

	ebiten.SetWindowSize(layout.Window.Width, layout.Window.Height)
	ebiten.SetWindowTitle(layout.Window.Title)
	ebiten.SetTPS(layout.Playback.TPS)

	log.Printf("✓ 窗口配置: %dx%d @ %d TPS, %d 个实体",
		layout.Window.Width, layout.Window.Height, layout.Playback.TPS, len(layout.Entities))
	log.Println("=== 启动完成，开始运行 ===")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}

	if err := settings.Save(); err != nil {
		log.Printf("警告: 保存设置失败: %v", err)
	}
}

// openSource 打开资源来源；目录来源同时启动热重载监视
func openSource() (loader.AssetSource, *loader.Watcher, func()) {
	if *packPath != "" {
		db, err := bolt.Open(*packPath, 0600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
		if err != nil {
			log.Fatalf("无法打开资源包 %s: %v", *packPath, err)
		}
		log.Printf("✓ 使用资源包: %s", *packPath)
		return loader.NewBoltSource(db), nil, func() { db.Close() }
	}

	source := loader.NewDirSource(*assetsDir)
	watcher, err := loader.NewWatcher(source)
	if err != nil {
		log.Printf("警告: 无法启动热重载: %v", err)
		return source, nil, func() {}
	}
	log.Printf("✓ 监视资源目录: %s", *assetsDir)
	return source, watcher, func() { watcher.Close() }
}

// openStorage 打开设置存储；失败时降级为仅内存设置
func openStorage() *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: "spriteanim_showcase"})
	if err != nil {
		log.Printf("警告: 无法打开设置存储: %v (设置不会被保存)", err)
		return nil
	}
	return manager
}

func hasEntity(layout *ShowcaseConfig, kind string, parts []string) bool {
	for _, entity := range layout.Entities {
		if entity.Kind == kind && slices.Equal(entity.Parts, parts) {
			return true
		}
	}
	return false
}
