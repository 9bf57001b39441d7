package loader

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/decker502/spriteanim/internal/act"
	"github.com/decker502/spriteanim/internal/spr"
	bolt "go.etcd.io/bbolt"
)

// Resource file buckets.
var (
	spritesBucket  = []byte("sprites")
	actionsBucket  = []byte("actions")
	picturesBucket = []byte("pictures")
)

// BoltSource reads assets from a bbolt resource file written by
// PackDirectory. Sprite and action descriptors are stored under their asset
// path; pictures are stored under the slash path of the PNG relative to the
// packed root, which is how descriptors reference them.
type BoltSource struct {
	db      *bolt.DB
	sprites map[string]*spr.SpriteSet
	actions map[string]*act.ActionTable
}

// NewBoltSource creates a source reading from an open resource file.
func NewBoltSource(db *bolt.DB) *BoltSource {
	return &BoltSource{
		db:      db,
		sprites: make(map[string]*spr.SpriteSet),
		actions: make(map[string]*act.ActionTable),
	}
}

// ResolveSprite returns the sprite set of an asset path.
func (s *BoltSource) ResolveSprite(assetPath string) (*spr.SpriteSet, error) {
	if sprites, ok := s.sprites[assetPath]; ok {
		return sprites, nil
	}

	var sprites *spr.SpriteSet
	err := s.db.View(func(tx *bolt.Tx) error {
		data, err := lookup(tx, spritesBucket, assetPath)
		if err != nil {
			return err
		}

		pictures := tx.Bucket(picturesBucket)
		dir := path.Dir(assetPath)
		// Values are only valid inside the transaction; decoding copies them.
		sprites, err = spr.ParseSprites(data, func(file string) ([]byte, error) {
			key := path.Join(dir, file)
			if pictures == nil {
				return nil, fmt.Errorf("picture '%s' not found", key)
			}
			picture := pictures.Get([]byte(key))
			if picture == nil {
				return nil, fmt.Errorf("picture '%s' not found", key)
			}
			return picture, nil
		})
		if err != nil {
			return fmt.Errorf("%w: sprite '%s': %w", ErrMalformedAsset, assetPath, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sprites[assetPath] = sprites
	return sprites, nil
}

// ResolveActions returns the action table of an asset path.
func (s *BoltSource) ResolveActions(assetPath string) (*act.ActionTable, error) {
	if actions, ok := s.actions[assetPath]; ok {
		return actions, nil
	}

	var actions *act.ActionTable
	err := s.db.View(func(tx *bolt.Tx) error {
		data, err := lookup(tx, actionsBucket, assetPath)
		if err != nil {
			return err
		}
		actions, err = act.ParseActions(data)
		if err != nil {
			return fmt.Errorf("%w: actions '%s': %w", ErrMalformedAsset, assetPath, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.actions[assetPath] = actions
	return actions, nil
}

// Forget drops the cached entries of an asset path.
func (s *BoltSource) Forget(assetPath string) {
	delete(s.sprites, assetPath)
	delete(s.actions, assetPath)
}

func lookup(tx *bolt.Tx, bucket []byte, key string) ([]byte, error) {
	buck := tx.Bucket(bucket)
	if buck == nil {
		return nil, fmt.Errorf("%w: %s (no %s bucket)", ErrAssetNotFound, key, bucket)
	}
	data := buck.Get([]byte(key))
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	return data, nil
}

// PackedAssets lists the asset paths that have a sprite descriptor in the
// resource file, in key order.
func PackedAssets(db *bolt.DB) ([]string, error) {
	var paths []string
	err := db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(spritesBucket)
		if buck == nil {
			return nil
		}
		return buck.ForEach(func(k, _ []byte) error {
			paths = append(paths, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list packed assets: %w", err)
	}
	return paths, nil
}

// PackStats counts the entries written by PackDirectory.
type PackStats struct {
	Sprites  int
	Actions  int
	Pictures int
}

// PackDirectory copies every sprite descriptor, action descriptor and PNG
// picture below root into the resource file, replacing existing entries.
//
// Parameters:
//   - db: The open resource file
//   - root: The asset directory, laid out as DirSource expects
//
// Returns:
//   - PackStats: Number of entries written per bucket
//   - error: Walk, read or write error
func PackDirectory(db *bolt.DB, root string) (PackStats, error) {
	var stats PackStats

	err := db.Update(func(tx *bolt.Tx) error {
		buckets := make(map[string]*bolt.Bucket, 3)
		for _, name := range [][]byte{spritesBucket, actionsBucket, picturesBucket} {
			buck, err := tx.CreateBucketIfNotExists(name)
			if err != nil {
				return err
			}
			buckets[string(name)] = buck
		}

		return filepath.WalkDir(root, func(file string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}

			rel, err := filepath.Rel(root, file)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			var (
				buck    *bolt.Bucket
				key     string
				counter *int
			)
			switch {
			case strings.HasSuffix(rel, SpriteSuffix):
				buck, key, counter = buckets[string(spritesBucket)], strings.TrimSuffix(rel, SpriteSuffix), &stats.Sprites
			case strings.HasSuffix(rel, ActionSuffix):
				buck, key, counter = buckets[string(actionsBucket)], strings.TrimSuffix(rel, ActionSuffix), &stats.Actions
			case strings.EqualFold(path.Ext(rel), ".png"):
				buck, key, counter = buckets[string(picturesBucket)], rel, &stats.Pictures
			default:
				return nil
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if err := buck.Put([]byte(key), data); err != nil {
				return fmt.Errorf("failed to store '%s': %w", key, err)
			}
			*counter++
			return nil
		})
	})
	if err != nil {
		return PackStats{}, fmt.Errorf("failed to pack '%s': %w", root, err)
	}

	log.Printf("[BoltSource] Packed %s: %d sprites, %d actions, %d pictures",
		root, stats.Sprites, stats.Actions, stats.Pictures)
	return stats, nil
}
