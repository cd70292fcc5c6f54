package main

import (
	"flag"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/annel0/cubeglobe/internal/render"
	"github.com/annel0/cubeglobe/internal/world"
)

// tilegen выгружает встроенный набор тайлов в спрайтшит и YAML-описание.
// Полученные файлы служат отправной точкой для собственного набора:
// художник перерисовывает ячейки, описание уже готово

const sheetName = "cubes.png"

func main() {
	outDir := flag.String("o", "assets", "каталог для спрайтшита и описания")
	tileWidth := flag.Int("width", render.DefaultTileWidth, "ширина тайла (чётная)")
	tileHeight := flag.Int("height", render.DefaultTileHeight, "высота тайла")
	flag.Parse()

	catalog, err := render.DefaultCatalogSized(*tileWidth, *tileHeight)
	if err != nil {
		log.Fatalf("❌ Ошибка сборки встроенного каталога: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("❌ Ошибка создания каталога %s: %v", *outDir, err)
	}

	blocks := world.SolidBlocks()
	faces := render.AllFaces()

	// Строки листа — типы блоков, столбцы — грани
	sheet := image.NewNRGBA(image.Rect(0, 0, len(faces)**tileWidth, len(blocks)**tileHeight))
	cfg := render.TilesConfig{
		TileWidth:  *tileWidth,
		TileHeight: *tileHeight,
		BasePath:   *outDir,
		Files:      []render.TilesFile{{Filename: sheetName}},
	}

	for row, block := range blocks {
		for col, face := range faces {
			tile, ok := catalog.Lookup(block, face)
			if !ok {
				continue
			}

			x := col * *tileWidth
			y := row * *tileHeight
			cell := image.Rect(x, y, x+*tileWidth, y+*tileHeight)
			draw.Draw(sheet, cell, tile.Image, tile.Image.Bounds().Min, draw.Src)

			cfg.Files[0].Tiles = append(cfg.Files[0].Tiles, render.TileEntry{
				Kind: block.String(),
				Face: face.String(),
				X:    x,
				Y:    y,
			})
		}
	}

	sheetPath := filepath.Join(*outDir, sheetName)
	f, err := os.Create(sheetPath)
	if err != nil {
		log.Fatalf("❌ Ошибка создания %s: %v", sheetPath, err)
	}
	if err := png.Encode(f, sheet); err != nil {
		f.Close()
		log.Fatalf("❌ Ошибка записи спрайтшита: %v", err)
	}
	f.Close()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		log.Fatalf("❌ Ошибка сериализации описания: %v", err)
	}
	cfgPath := filepath.Join(*outDir, "tiles.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		log.Fatalf("❌ Ошибка записи %s: %v", cfgPath, err)
	}

	log.Printf("✅ Спрайтшит: %s, описание: %s", sheetPath, cfgPath)
}
