package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 动画预览工具的设置
// 记录上次查看的实体组合，下次启动时恢复
type ViewerSettings struct {
	Kind          string   `yaml:"kind"`          // 实体类型
	Parts         []string `yaml:"parts"`         // 部件资源路径（有序）
	Action        int      `yaml:"action"`        // 当前动作
	Direction     int      `yaml:"direction"`     // 当前朝向 0-7
	HeadDirection int      `yaml:"headDirection"` // 头部朝向偏移 0-2
}

// DefaultViewerSettings 返回默认设置
func DefaultViewerSettings() *ViewerSettings {
	return &ViewerSettings{
		Kind: "monster",
	}
}

// 存储路径常量
const (
	viewerObject   = "viewer"
	viewerProperty = "last"
)

// ViewerSettingsManager 预览设置管理器
type ViewerSettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *ViewerSettings
}

// NewViewerSettingsManager 创建新的预览设置管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewViewerSettingsManager(gdataManager *gdata.Manager) *ViewerSettingsManager {
	m := &ViewerSettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultViewerSettings(),
	}

	if err := m.Load(); err != nil {
		log.Printf("[ViewerSettings] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Load 从 gdata 加载设置；不存在时使用默认设置
func (m *ViewerSettingsManager) Load() error {
	if m.gdataManager == nil || !m.gdataManager.ObjectPropExists(viewerObject, viewerProperty) {
		m.settings = DefaultViewerSettings()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(viewerObject, viewerProperty)
	if err != nil {
		m.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to load viewer settings: %w", err)
	}

	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to unmarshal viewer settings: %w", err)
	}

	m.settings = &loaded
	return nil
}

// Save 保存设置到 gdata；降级模式下直接返回 nil
func (m *ViewerSettingsManager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal viewer settings: %w", err)
	}

	if err := m.gdataManager.SaveObjectProp(viewerObject, viewerProperty, data); err != nil {
		return fmt.Errorf("failed to save viewer settings: %w", err)
	}

	log.Printf("[ViewerSettings] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (m *ViewerSettingsManager) GetSettings() *ViewerSettings {
	return m.settings
}

// SetSelection 更新当前选择（仅修改内存，需调用 Save 持久化）
func (m *ViewerSettingsManager) SetSelection(action, direction, headDirection int) {
	m.settings.Action = max(action, 0)
	m.settings.Direction = ((direction % 8) + 8) % 8
	m.settings.HeadDirection = ((headDirection % 3) + 3) % 3
}

// SetComposition 更新实体组合（仅修改内存）
func (m *ViewerSettingsManager) SetComposition(kind string, parts []string) {
	m.settings.Kind = kind
	m.settings.Parts = append([]string(nil), parts...)
}
