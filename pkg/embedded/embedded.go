// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让加载器等其他包可以访问嵌入的示例资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// assetsDir 嵌入文件系统中的资源根目录
const assetsDir = "assets"

// ErrNotInitialized 未调用 Init() 时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	assetsFS    fs.FS
	initialized bool
)

// Init 初始化嵌入文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets fs.FS) {
	assetsFS = assets
	initialized = assets != nil
}

// cleanPath 标准化路径并检查前缀
// 路径必须以 "assets/" 开头
func cleanPath(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}

	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	if path != assetsDir && !strings.HasPrefix(path, assetsDir+"/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with '%s/')", path, assetsDir)
	}
	return path, nil
}

// Open 打开嵌入的文件
func Open(path string) (fs.File, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return assetsFS.Open(path)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在嵌入文件系统中匹配文件
func Glob(pattern string) ([]string, error) {
	pattern, err := cleanPath(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(assetsFS, pattern)
}

// Sub 返回指定目录的子文件系统
func Sub(dir string) (fs.FS, error) {
	dir, err := cleanPath(dir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(assetsFS, dir)
}

// Assets 返回以资源根目录为根的文件系统
// 路径形如 "human/body.spr.yaml"，可直接交给 loader.NewFSSource
func Assets() (fs.FS, error) {
	return Sub(assetsDir)
}
