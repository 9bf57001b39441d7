package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/decker502/spriteanim/internal/act"
	"github.com/decker502/spriteanim/internal/spr"
)

// Asset descriptor suffixes.
const (
	SpriteSuffix = ".spr.yaml"
	ActionSuffix = ".act.yaml"
)

// DirSource reads assets from a file tree: an asset path "human/body" maps
// to human/body.spr.yaml and human/body.act.yaml below the root. Parsed
// results are cached per path and shared by every composition that uses them.
//
// Thread Safety Note:
// DirSource is NOT thread-safe, like the AnimationLoader that drives it.
type DirSource struct {
	fsys    fs.FS
	root    string                      // OS directory; empty for NewFSSource
	sprites map[string]*spr.SpriteSet   // asset path -> parsed sprite set
	actions map[string]*act.ActionTable // asset path -> parsed action table
}

// NewDirSource creates a source rooted at an OS directory.
func NewDirSource(root string) *DirSource {
	source := NewFSSource(os.DirFS(root))
	source.root = root
	return source
}

// NewFSSource creates a source reading from a file system, such as the
// embedded sample assets. It cannot be watched.
func NewFSSource(fsys fs.FS) *DirSource {
	return &DirSource{
		fsys:    fsys,
		sprites: make(map[string]*spr.SpriteSet),
		actions: make(map[string]*act.ActionTable),
	}
}

// Root returns the OS directory the source reads from, or "" when it reads
// from an arbitrary file system.
func (s *DirSource) Root() string {
	return s.root
}

// ResolveSprite returns the sprite set of an asset path.
func (s *DirSource) ResolveSprite(assetPath string) (*spr.SpriteSet, error) {
	if sprites, ok := s.sprites[assetPath]; ok {
		return sprites, nil
	}

	data, err := s.readDescriptor(assetPath, SpriteSuffix)
	if err != nil {
		return nil, err
	}

	dir := path.Dir(assetPath)
	sprites, err := spr.ParseSprites(data, func(name string) ([]byte, error) {
		return fs.ReadFile(s.fsys, path.Join(dir, name))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: sprite '%s': %w", ErrMalformedAsset, assetPath, err)
	}

	s.sprites[assetPath] = sprites
	return sprites, nil
}

// ResolveActions returns the action table of an asset path.
func (s *DirSource) ResolveActions(assetPath string) (*act.ActionTable, error) {
	if actions, ok := s.actions[assetPath]; ok {
		return actions, nil
	}

	data, err := s.readDescriptor(assetPath, ActionSuffix)
	if err != nil {
		return nil, err
	}

	actions, err := act.ParseActions(data)
	if err != nil {
		return nil, fmt.Errorf("%w: actions '%s': %w", ErrMalformedAsset, assetPath, err)
	}

	s.actions[assetPath] = actions
	return actions, nil
}

// Forget drops the cached entries of an asset path.
func (s *DirSource) Forget(assetPath string) {
	delete(s.sprites, assetPath)
	delete(s.actions, assetPath)
}

// AssetPath maps a descriptor file below the root back to its asset path.
// It returns false for files that are not sprite or action descriptors.
func (s *DirSource) AssetPath(file string) (string, bool) {
	if s.root == "" {
		return "", false
	}
	rel, err := filepath.Rel(s.root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	for _, suffix := range []string{SpriteSuffix, ActionSuffix} {
		if strings.HasSuffix(rel, suffix) {
			return strings.TrimSuffix(rel, suffix), true
		}
	}
	return "", false
}

func (s *DirSource) readDescriptor(assetPath, suffix string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, assetPath+suffix)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s%s': %w", assetPath, suffix, err)
	}
	return data, nil
}
