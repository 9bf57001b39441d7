package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/decker502/spriteanim/pkg/animation"
	"github.com/decker502/spriteanim/pkg/atlas"
	"github.com/decker502/spriteanim/pkg/components"
	"github.com/decker502/spriteanim/pkg/config"
	"github.com/decker502/spriteanim/pkg/ecs"
	"github.com/decker502/spriteanim/pkg/embedded"
	"github.com/decker502/spriteanim/pkg/loader"
	"github.com/decker502/spriteanim/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 800
	screenHeight = 600

	groundY = 380

	// directionPeriod is how long the camera stays on one direction.
	directionPeriod = 2 * time.Second
)

// demoEntity is one composition rendered by the demo.
type demoEntity struct {
	kind  animation.EntityKind
	parts []string
}

// demoEntities lists the player when both of its parts are embedded,
// followed by one monster per embedded monster action table.
func demoEntities() ([]demoEntity, error) {
	var entities []demoEntity

	player := []string{"human/body", "human/head"}
	if embedded.Exists("assets/human/body.act.yaml") && embedded.Exists("assets/human/head.act.yaml") {
		entities = append(entities, demoEntity{animation.EntityKindPlayer, player})
	}

	monsters, err := embedded.Glob("assets/monster/*" + loader.ActionSuffix)
	if err != nil {
		return nil, err
	}
	for _, file := range monsters {
		assetPath := strings.TrimSuffix(strings.TrimPrefix(file, "assets/"), loader.ActionSuffix)
		entities = append(entities, demoEntity{animation.EntityKindMonster, []string{assetPath}})
	}
	return entities, nil
}

// Game represents the main game structure.
// It implements the ebiten.Game interface and renders the embedded sample
// compositions while the camera slowly turns around them.
type Game struct {
	entityManager *ecs.EntityManager
	animSystem    *systems.SpriteAnimationSystem
	renderSystem  *systems.SpriteRenderSystem

	entities []ecs.EntityID
	start    time.Time
}

// NewGame loads every demo composition and creates one entity for each,
// spaced evenly across the screen.
func NewGame(animLoader *loader.AnimationLoader, entities []demoEntity) (*Game, error) {
	em := ecs.NewEntityManager()
	g := &Game{
		entityManager: em,
		animSystem:    systems.NewSpriteAnimationSystem(em),
		renderSystem:  systems.NewSpriteRenderSystem(em),
		start:         time.Now(),
	}

	for i, entity := range entities {
		data, err := animLoader.Get(entity.kind, entity.parts)
		if err != nil {
			return nil, fmt.Errorf("load %s %v: %w", entity.kind, entity.parts, err)
		}

		id := em.CreateEntity()
		x := float64(screenWidth) * float64(i+1) / float64(len(entities)+1)
		ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: groundY})
		ecs.AddComponent(em, id, &components.SpriteAnimationComponent{
			Data:  data,
			State: animation.NewAnimationState(g.clientTick()),
			Scale: 2,
		})
		g.entities = append(g.entities, id)
	}
	return g, nil
}

// clientTick returns the milliseconds elapsed since start.
func (g *Game) clientTick() uint32 {
	return uint32(time.Since(g.start).Milliseconds())
}

// Update updates the game logic.
// Space toggles every entity between its first two actions.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	tick := g.clientTick()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		for _, id := range g.entities {
			if anim, ok := ecs.GetComponent[*components.SpriteAnimationComponent](g.entityManager, id); ok {
				anim.SetAction((anim.State.Action+1)%2, tick)
			}
		}
	}

	g.animSystem.CameraDirection = int(time.Since(g.start)/directionPeriod) % animation.DirectionCount
	g.animSystem.Update(tick)
	return nil
}

// Draw renders the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 144, G: 238, B: 144, A: 255})
	g.renderSystem.Draw(screen)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("direction %d | Space: switch action | Esc: quit",
		g.animSystem.CameraDirection), 10, screenHeight-20)
}

// Layout returns the game's logical screen size.
// This size is independent of the actual window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	embedded.Init(assetsFS)

	assets, err := embedded.Assets()
	if err != nil {
		log.Fatalf("embedded assets unavailable: %v", err)
	}

	configs, err := config.NewAnimationConfigManager(nil)
	if err != nil {
		log.Fatal(err)
	}

	animLoader, err := loader.NewAnimationLoader(loader.NewFSSource(assets), atlas.NewProvider(), configs)
	if err != nil {
		log.Fatal(err)
	}

	entities, err := demoEntities()
	if err != nil {
		log.Fatalf("failed to list embedded compositions: %v", err)
	}
	if len(entities) == 0 {
		log.Fatal("no embedded compositions to show")
	}

	game, err := NewGame(animLoader, entities)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Sprite Animation Demo")

	// Start the game loop
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
