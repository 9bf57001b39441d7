// cmd/animation_showcase/config.go
// 动画预览工具的布局配置加载和解析模块

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShowcaseConfig 预览工具完整配置
type ShowcaseConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Grid     GridConfig     `yaml:"grid"`
	Playback PlaybackConfig `yaml:"playback"`
	Entities []EntityConfig `yaml:"entities"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// GridConfig 网格布局配置
type GridConfig struct {
	Columns    int `yaml:"columns"`
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// PlaybackConfig 播放配置
type PlaybackConfig struct {
	TPS   int     `yaml:"tps"`   // 游戏目标 TPS
	Scale float64 `yaml:"scale"` // 默认缩放比例
}

// EntityConfig 一个待展示的实体组合
type EntityConfig struct {
	Name  string   `yaml:"name"`
	Kind  string   `yaml:"kind"`
	Parts []string `yaml:"parts"` // 资源路径，按部件角色顺序排列
	Scale float64  `yaml:"scale"`
}

// LoadConfig 从文件加载配置；path 为空时返回默认配置
func LoadConfig(configPath string) (*ShowcaseConfig, error) {
	var config ShowcaseConfig

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	applyDefaults(&config)

	for i, entity := range config.Entities {
		if entity.Kind == "" {
			return nil, fmt.Errorf("实体 #%d 缺少 'kind' 字段", i)
		}
		if len(entity.Parts) == 0 {
			return nil, fmt.Errorf("实体 #%d (%s) 缺少 'parts' 字段", i, entity.Name)
		}
	}
	return &config, nil
}

// applyDefaults 设置默认值
func applyDefaults(config *ShowcaseConfig) {
	if config.Window.Width == 0 {
		config.Window.Width = 960
	}
	if config.Window.Height == 0 {
		config.Window.Height = 640
	}
	if config.Window.Title == "" {
		config.Window.Title = "Sprite Animation Showcase"
	}
	if config.Playback.TPS == 0 {
		config.Playback.TPS = 60
	}
	if config.Playback.Scale == 0 {
		config.Playback.Scale = 2.0
	}
	if config.Grid.Columns == 0 {
		config.Grid.Columns = 4
	}
	if config.Grid.CellWidth == 0 {
		config.Grid.CellWidth = 240
	}
	if config.Grid.CellHeight == 0 {
		config.Grid.CellHeight = 300
	}

	for i := range config.Entities {
		if config.Entities[i].Scale == 0 {
			config.Entities[i].Scale = config.Playback.Scale
		}
		if config.Entities[i].Name == "" {
			config.Entities[i].Name = fmt.Sprintf("%s #%d", config.Entities[i].Kind, i+1)
		}
	}
}

// CellAnchor 返回第 index 个网格单元中实体脚下锚点的屏幕坐标
func (c *ShowcaseConfig) CellAnchor(index int) (float64, float64) {
	col := index % c.Grid.Columns
	row := index / c.Grid.Columns
	x := float64(col*c.Grid.CellWidth + c.Grid.CellWidth/2)
	y := float64(row*c.Grid.CellHeight + c.Grid.CellHeight*3/4)
	return x, y
}
