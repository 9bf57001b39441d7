package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed animation_config.yaml
var defaultAnimationConfig []byte

// 缓存淘汰策略
const (
	CachePolicyLRU       = "lru"
	CachePolicyUnbounded = "unbounded"
)

// AnimationConfig 动画合成配置文件的顶层结构
type AnimationConfig struct {
	// Cache 合成结果缓存配置
	Cache CacheConfig `yaml:"cache"`

	// EntityKinds 实体类型列表（player、monster、npc ...）
	EntityKinds []EntityKindConfig `yaml:"entity_kinds"`
}

// CacheConfig 合成结果缓存配置
type CacheConfig struct {
	// Policy 淘汰策略（"lru" 或 "unbounded"）
	Policy string `yaml:"policy"`

	// Size LRU 容量（policy=lru 时必须大于 0）
	Size int `yaml:"size,omitempty"`
}

// EntityKindConfig 实体类型配置
// 以数据驱动的方式描述每种实体的特殊行为，而不是在合成算法里写死条件判断
type EntityKindConfig struct {
	// Name 实体类型名称（如 "player"）
	Name string `yaml:"name"`

	// SuppressIdleAnimation 是否禁止待机动作的逐帧播放（始终显示第 0 帧）
	SuppressIdleAnimation bool `yaml:"suppress_idle_animation,omitempty"`

	// IdleAction 待机动作索引，默认 0
	IdleAction int `yaml:"idle_action,omitempty"`

	// Parts 按资源顺序排列的部件角色
	Parts []PartConfig `yaml:"parts"`
}

// PartConfig 部件角色配置
type PartConfig struct {
	// Role 角色名称（如 "body"、"head"）
	Role string `yaml:"role"`

	// AttachTo 父角色名称（可选）
	// 设置后，该部件通过挂点对齐到父部件
	AttachTo string `yaml:"attach_to,omitempty"`
}

// DefaultAnimationConfig 返回内置的默认配置
func DefaultAnimationConfig() (*AnimationConfig, error) {
	config, err := ParseAnimationConfig(defaultAnimationConfig)
	if err != nil {
		return nil, fmt.Errorf("内置动画配置无效: %w", err)
	}
	return config, nil
}

// LoadAnimationConfig 从 YAML 文件加载动画合成配置
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *AnimationConfig: 解析并验证后的配置
//   - error: 读取、解析或验证错误
func LoadAnimationConfig(path string) (*AnimationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	config, err := ParseAnimationConfig(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return config, nil
}

// ParseAnimationConfig 解析并验证 YAML 配置内容
func ParseAnimationConfig(data []byte) (*AnimationConfig, error) {
	var config AnimationConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("无法解析 YAML: %w", err)
	}

	if config.Cache.Policy == "" {
		config.Cache.Policy = CachePolicyUnbounded
	}

	if err := validateAnimationConfig(&config); err != nil {
		return nil, fmt.Errorf("验证失败: %w", err)
	}
	return &config, nil
}

// validateAnimationConfig 验证配置的完整性和正确性
func validateAnimationConfig(config *AnimationConfig) error {
	switch config.Cache.Policy {
	case CachePolicyUnbounded:
	case CachePolicyLRU:
		if config.Cache.Size <= 0 {
			return fmt.Errorf("lru 缓存容量必须大于 0，实际为 %d", config.Cache.Size)
		}
	default:
		return fmt.Errorf("未知的缓存策略 '%s'，只能是 'lru' 或 'unbounded'", config.Cache.Policy)
	}

	names := make(map[string]bool)
	for i, kind := range config.EntityKinds {
		if kind.Name == "" {
			return fmt.Errorf("实体类型 #%d 缺少 'name' 字段", i)
		}
		if names[kind.Name] {
			return fmt.Errorf("重复的实体类型: %s", kind.Name)
		}
		names[kind.Name] = true

		if kind.IdleAction < 0 {
			return fmt.Errorf("实体类型 '%s' 的 idle_action 不能为负数", kind.Name)
		}

		if err := validateParts(kind.Parts); err != nil {
			return fmt.Errorf("实体类型 '%s' 的部件配置无效: %w", kind.Name, err)
		}
	}

	return nil
}

// validateParts 验证部件角色（角色唯一、父角色存在、无循环挂接）
func validateParts(parts []PartConfig) error {
	parents := make(map[string]string)
	roles := make(map[string]bool)
	for i, part := range parts {
		if part.Role == "" {
			return fmt.Errorf("部件 #%d 缺少 'role' 字段", i)
		}
		if roles[part.Role] {
			return fmt.Errorf("重复的部件角色: %s", part.Role)
		}
		roles[part.Role] = true
		if part.AttachTo != "" {
			parents[part.Role] = part.AttachTo
		}
	}

	for role, parent := range parents {
		if !roles[parent] {
			return fmt.Errorf("部件 '%s' 挂接到不存在的角色 '%s'", role, parent)
		}
	}

	// 使用深度优先搜索检测循环
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(string) bool
	hasCycle = func(role string) bool {
		visited[role] = true
		recStack[role] = true

		if parent, exists := parents[role]; exists {
			if !visited[parent] {
				if hasCycle(parent) {
					return true
				}
			} else if recStack[parent] {
				return true
			}
		}

		recStack[role] = false
		return false
	}

	for role := range parents {
		if !visited[role] && hasCycle(role) {
			return fmt.Errorf("部件挂接关系存在循环依赖，涉及角色: %s", role)
		}
	}
	return nil
}

// AnimationConfigManager 动画合成配置管理器
// 按名称索引实体类型配置
type AnimationConfigManager struct {
	config  *AnimationConfig
	kindMap map[string]*EntityKindConfig
	mu      sync.RWMutex
}

// NewAnimationConfigManager 创建配置管理器
//
// 参数：
//   - config: 已验证的配置；为 nil 时使用内置默认配置
//
// 返回：
//   - *AnimationConfigManager: 配置管理器实例
//   - error: 默认配置加载失败时返回错误
func NewAnimationConfigManager(config *AnimationConfig) (*AnimationConfigManager, error) {
	if config == nil {
		defaults, err := DefaultAnimationConfig()
		if err != nil {
			return nil, err
		}
		config = defaults
	}

	kindMap := make(map[string]*EntityKindConfig, len(config.EntityKinds))
	for i := range config.EntityKinds {
		kind := &config.EntityKinds[i]
		kindMap[kind.Name] = kind
	}

	return &AnimationConfigManager{
		config:  config,
		kindMap: kindMap,
	}, nil
}

// GetEntityKind 获取实体类型配置
func (m *AnimationConfigManager) GetEntityKind(name string) (*EntityKindConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kind, exists := m.kindMap[name]
	if !exists {
		return nil, fmt.Errorf("实体类型 '%s' 不存在", name)
	}
	return kind, nil
}

// GetCacheConfig 获取缓存配置
func (m *AnimationConfigManager) GetCacheConfig() CacheConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.config.Cache
}

// ListEntityKinds 列出所有实体类型名称（按字母排序）
func (m *AnimationConfigManager) ListEntityKinds() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.kindMap))
	for name := range m.kindMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
