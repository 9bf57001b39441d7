package main

import (
	"testing"
	"testing/fstest"

	"github.com/decker502/spriteanim/pkg/config"
	"github.com/decker502/spriteanim/pkg/loader"
)

// newTestGame 创建一个只含 Poring 的预览，资源来自内存文件系统
func newTestGame(t *testing.T) *Game {
	t.Helper()

	fsys := fstest.MapFS{
		"monster/poring.spr.yaml": {Data: []byte("palette_images:\n  - {width: 10, height: 10}\n")},
		"monster/poring.act.yaml": {Data: []byte("delays: [1, 1]\nactions:\n  - motions:\n      - clips:\n          - {sprite: 0}\n  - motions:\n      - clips:\n          - {sprite: 0}\n")},
	}
	animLoader, err := loader.NewAnimationLoader(loader.NewFSSource(fsys), nil, nil)
	if err != nil {
		t.Fatalf("Failed to create loader: %v", err)
	}

	layout, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	layout.Entities = []EntityConfig{
		{Name: "Poring", Kind: "monster", Parts: []string{"monster/poring"}},
		{Name: "Ghost", Kind: "monster", Parts: []string{"monster/ghost"}},
	}

	return NewGame(layout, animLoader, nil, config.NewViewerSettingsManager(nil))
}

func TestGame_ReloadReplacesEntity(t *testing.T) {
	g := newTestGame(t)
	poring, ghost := g.entries[0], g.entries[1]

	if poring.id == 0 || poring.err != nil {
		t.Fatalf("Expected Poring to spawn, got id %d err %v", poring.id, poring.err)
	}
	if ghost.id != 0 || ghost.err == nil {
		t.Fatalf("Expected Ghost to fail loading, got id %d", ghost.id)
	}

	anim := g.component(poring)
	anim.SetAction(1, 100)
	anim.HeadDirection = 2
	oldID, oldData := poring.id, anim.Data

	g.reload("monster/poring")

	if poring.id == 0 || poring.id == oldID {
		t.Fatalf("Expected a new entity, got id %d (old %d)", poring.id, oldID)
	}
	if g.entityManager.Exists(oldID) {
		t.Error("Expected the old entity to be removed")
	}
	if g.entityManager.EntityCount() != 1 {
		t.Errorf("Expected 1 live entity, got %d", g.entityManager.EntityCount())
	}

	reloaded := g.component(poring)
	if reloaded == nil {
		t.Fatal("Expected the new entity to carry an animation")
	}
	if reloaded.Data == oldData {
		t.Error("Expected a freshly composed animation table")
	}
	if reloaded.State.Action != 1 || reloaded.State.StartTime != 100 || reloaded.HeadDirection != 2 {
		t.Errorf("Expected playback state kept, got %+v head %d", reloaded.State, reloaded.HeadDirection)
	}
}

func TestGame_ReloadIgnoresUnrelatedPaths(t *testing.T) {
	g := newTestGame(t)
	id := g.entries[0].id

	g.reload("human/body")

	if g.entries[0].id != id || !g.entityManager.Exists(id) {
		t.Error("Expected entities without the path to stay untouched")
	}
}
