package loader

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"
)

func openResourceFile(t *testing.T) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "assets.res"), 0600, nil)
	if err != nil {
		t.Fatalf("Failed to open resource file: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPackDirectory(t *testing.T) {
	root := writeAssetTree(t)
	writeFile(t, root, "README.txt", []byte("ignored"))
	db := openResourceFile(t)

	stats, err := PackDirectory(db, root)
	if err != nil {
		t.Fatalf("PackDirectory failed: %v", err)
	}
	if stats != (PackStats{Sprites: 1, Actions: 1, Pictures: 1}) {
		t.Errorf("Unexpected stats %+v", stats)
	}

	paths, err := PackedAssets(db)
	if err != nil || len(paths) != 1 || paths[0] != "monster/poring" {
		t.Errorf("Expected [monster/poring], got %v (%v)", paths, err)
	}

	err = db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(picturesBucket).Get([]byte("monster/poring.png")) == nil {
			t.Error("Expected picture stored under its slash path")
		}
		if tx.Bucket(spritesBucket).Get([]byte("monster/poring")) == nil {
			t.Error("Expected sprite descriptor stored under its asset path")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
}

func TestBoltSource_Resolve(t *testing.T) {
	db := openResourceFile(t)
	if _, err := PackDirectory(db, writeAssetTree(t)); err != nil {
		t.Fatalf("PackDirectory failed: %v", err)
	}
	source := NewBoltSource(db)

	sprites, err := source.ResolveSprite("monster/poring")
	if err != nil {
		t.Fatalf("ResolveSprite failed: %v", err)
	}
	if size, _ := sprites.ImageSize(1); size != image.Pt(12, 8) {
		t.Errorf("Expected decoded size (12,8), got %v", size)
	}

	actions, err := source.ResolveActions("monster/poring")
	if err != nil {
		t.Fatalf("ResolveActions failed: %v", err)
	}
	if actions.Delays[0] != 4 {
		t.Errorf("Expected delay 4, got %v", actions.Delays)
	}

	if _, err := source.ResolveSprite("monster/ghost"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound, got %v", err)
	}

	source.Forget("monster/poring")
	fresh, _ := source.ResolveSprite("monster/poring")
	if fresh == sprites {
		t.Error("Expected a fresh sprite set after Forget")
	}
}

func TestBoltSource_EmptyFile(t *testing.T) {
	source := NewBoltSource(openResourceFile(t))

	if _, err := source.ResolveActions("monster/poring"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound without buckets, got %v", err)
	}
}

func TestBoltSource_MissingPicture(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "monster/poring.spr.yaml", []byte(poringSprite))
	db := openResourceFile(t)
	if _, err := PackDirectory(db, root); err != nil {
		t.Fatalf("PackDirectory failed: %v", err)
	}

	_, err := NewBoltSource(db).ResolveSprite("monster/poring")
	if !errors.Is(err, ErrMalformedAsset) {
		t.Errorf("Expected ErrMalformedAsset, got %v", err)
	}
}
