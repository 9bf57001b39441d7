// cmd/act_packer/main.go
// 将资源目录打包为 bbolt 资源文件，供 loader.BoltSource 读取
//
// 用法：
//   go run ./cmd/act_packer --assets=assets --out=assets.res

package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/spriteanim/pkg/loader"
	bolt "go.etcd.io/bbolt"
)

var (
	assetsDir    string
	resourceFile string
	verify       bool
)

func parseFlags() {
	flag.StringVar(&assetsDir, "assets", "./assets",
		"Path to the directory where sprite and action descriptors are stored.")
	flag.StringVar(&resourceFile, "out", "./assets.res",
		"Resource file to store sprites, actions and pictures.")
	flag.BoolVar(&verify, "verify", true,
		"Resolve every packed asset after writing to catch malformed descriptors.")

	flag.Parse()
}

func main() {
	parseFlags()

	if _, err := os.Stat(assetsDir); err != nil {
		log.Fatalf("资源目录不可用: %v", err)
	}

	db, err := bolt.Open(resourceFile, 0666, nil)
	handleError(err)
	defer db.Close()

	stats, err := loader.PackDirectory(db, assetsDir)
	handleError(err)

	log.Printf("✓ 已写入 %s: %d 个精灵, %d 个动作, %d 张图片",
		resourceFile, stats.Sprites, stats.Actions, stats.Pictures)

	if verify {
		failed := verifyPack(db)
		if failed > 0 {
			log.Fatalf("✗ %d 个资源无法解析", failed)
		}
		log.Printf("✓ 校验通过")
	}
}

// verifyPack 逐个解析资源包中的资源，返回失败数量
func verifyPack(db *bolt.DB) int {
	paths, err := loader.PackedAssets(db)
	handleError(err)

	source := loader.NewBoltSource(db)
	failed := 0
	for _, path := range paths {
		if _, err := source.ResolveSprite(path); err != nil {
			log.Printf("  ✗ %s: %v", path, err)
			failed++
			continue
		}
		if _, err := source.ResolveActions(path); err != nil {
			log.Printf("  ✗ %s: %v", path, err)
			failed++
		}
	}
	return failed
}

func handleError(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
