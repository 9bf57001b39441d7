package loader

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"github.com/decker502/spriteanim/pkg/animation"
	"github.com/decker502/spriteanim/pkg/config"
)

// AnimationLoader composes and caches animation tables for entity
// compositions. A request names an entity kind and the ordered asset paths
// of its parts; the first request composes the table, later requests with
// the same kind and paths share the cached pointer. Failed requests cache
// nothing.
//
// Thread Safety Note:
// AnimationLoader is NOT thread-safe. The asset sources it drives keep plain
// map caches, so callers must serialize Get and Invalidate. The returned
// *AnimationData is immutable and may be read from any goroutine.
//
// Usage:
//
//	configs, _ := config.NewAnimationConfigManager(nil)
//	loader, _ := loader.NewAnimationLoader(loader.NewDirSource("assets"), provider, configs)
//	data, err := loader.Get(animation.EntityKindPlayer, []string{"human/body", "human/head"})
type AnimationLoader struct {
	source   AssetSource
	textures TextureProvider
	configs  *config.AnimationConfigManager
	cache    Cache
}

// NewAnimationLoader creates a loader whose cache follows the configured
// eviction policy.
//
// Parameters:
//   - source: Resolves asset paths to sprite sets and action tables
//   - textures: Supplies texture regions; nil leaves pairs without textures
//   - configs: Entity kind behavior; nil uses the embedded defaults
//
// Returns:
//   - *AnimationLoader: The loader with an empty cache
//   - error: Default config or cache construction error
func NewAnimationLoader(source AssetSource, textures TextureProvider, configs *config.AnimationConfigManager) (*AnimationLoader, error) {
	if configs == nil {
		defaults, err := config.NewAnimationConfigManager(nil)
		if err != nil {
			return nil, err
		}
		configs = defaults
	}

	cache, err := NewCache(configs.GetCacheConfig())
	if err != nil {
		return nil, err
	}
	return NewAnimationLoaderWithCache(source, textures, configs, cache), nil
}

// NewAnimationLoaderWithCache creates a loader with an explicit cache.
func NewAnimationLoaderWithCache(source AssetSource, textures TextureProvider, configs *config.AnimationConfigManager, cache Cache) *AnimationLoader {
	return &AnimationLoader{
		source:   source,
		textures: textures,
		configs:  configs,
		cache:    cache,
	}
}

// CacheKey identifies an entity composition: the kind plus the ordered paths.
// Every segment is Go-quoted, so separators inside a kind or path cannot
// make two compositions share a key.
func CacheKey(kind animation.EntityKind, paths []string) string {
	var b strings.Builder
	b.WriteString(strconv.Quote(string(kind)))
	for _, path := range paths {
		b.WriteByte(':')
		b.WriteString(strconv.Quote(path))
	}
	return b.String()
}

// keySegments splits a key built by CacheKey back into its kind and paths.
func keySegments(key string) (string, []string, bool) {
	var segments []string
	for len(key) > 0 {
		quoted, err := strconv.QuotedPrefix(key)
		if err != nil {
			return "", nil, false
		}
		segment, err := strconv.Unquote(quoted)
		if err != nil {
			return "", nil, false
		}
		segments = append(segments, segment)

		key = key[len(quoted):]
		if len(key) > 0 {
			if key[0] != ':' {
				return "", nil, false
			}
			key = key[1:]
		}
	}
	if len(segments) == 0 {
		return "", nil, false
	}
	return segments[0], segments[1:], true
}

// Get returns the animation table of a composition, composing it on the
// first request.
func (l *AnimationLoader) Get(kind animation.EntityKind, paths []string) (*animation.AnimationData, error) {
	key := CacheKey(kind, paths)
	if data, ok := l.cache.Get(key); ok {
		return data, nil
	}

	data, err := l.Load(kind, paths)
	if err != nil {
		return nil, err
	}

	l.cache.Add(key, data)
	log.Printf("[AnimationLoader] Loaded %s (%d pairs, %d animations)", key, len(data.Pairs), len(data.Animations))
	return data, nil
}

// Load composes a composition without consulting or filling the cache.
func (l *AnimationLoader) Load(kind animation.EntityKind, paths []string) (*animation.AnimationData, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: entity kind '%s'", ErrNoParts, kind)
	}

	kindConfig, err := l.configs.GetEntityKind(string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityKind, kind)
	}

	pairs := make([]animation.AnimationPair, len(paths))
	for i, path := range paths {
		pair, err := l.resolvePair(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s part '%s': %w", kind, path, err)
		}
		pairs[i] = pair
	}

	data, err := animation.Compose(kind, BehaviorFor(kindConfig), pairs)
	if err != nil {
		if errors.Is(err, animation.ErrNoPairs) {
			return nil, fmt.Errorf("%w: %w", ErrNoParts, err)
		}
		return nil, fmt.Errorf("failed to compose %s: %w", CacheKey(kind, paths), err)
	}
	return data, nil
}

func (l *AnimationLoader) resolvePair(path string) (animation.AnimationPair, error) {
	sprites, err := l.source.ResolveSprite(path)
	if err != nil {
		return animation.AnimationPair{}, err
	}
	actions, err := l.source.ResolveActions(path)
	if err != nil {
		return animation.AnimationPair{}, err
	}

	pair := animation.AnimationPair{
		Path:    path,
		Sprites: sprites,
		Actions: actions,
	}
	if l.textures != nil {
		pair.Textures, err = l.textures.Textures(path, sprites)
		if err != nil {
			return animation.AnimationPair{}, fmt.Errorf("failed to load textures: %w", err)
		}
	}
	return pair, nil
}

// Invalidate drops every cached composition that uses the asset path and
// asks the source and texture provider to forget it, so the next Get reads
// the asset again.
//
// Returns:
//   - int: Number of compositions removed
func (l *AnimationLoader) Invalidate(path string) int {
	removed := 0
	for _, key := range l.cache.Keys() {
		if keyReferences(key, path) {
			l.cache.Remove(key)
			removed++
		}
	}

	if f, ok := l.source.(Forgetter); ok {
		f.Forget(path)
	}
	if f, ok := l.textures.(Forgetter); ok {
		f.Forget(path)
	}

	log.Printf("[AnimationLoader] Invalidated %s (%d compositions)", path, removed)
	return removed
}

// CachedCount returns the number of cached compositions.
func (l *AnimationLoader) CachedCount() int {
	return l.cache.Len()
}

func keyReferences(key, path string) bool {
	_, paths, ok := keySegments(key)
	return ok && slices.Contains(paths, path)
}

// BehaviorFor converts an entity kind configuration into composition and
// selection behavior.
func BehaviorFor(kind *config.EntityKindConfig) animation.Behavior {
	behavior := animation.Behavior{
		SuppressIdleAnimation: kind.SuppressIdleAnimation,
		IdleAction:            kind.IdleAction,
		Roles:                 make([]animation.PartRole, len(kind.Parts)),
	}
	for i, part := range kind.Parts {
		behavior.Roles[i] = animation.PartRole{Name: part.Role, AttachTo: part.AttachTo}
	}
	return behavior
}
