package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/annel0/cubeglobe/internal/config"
	"github.com/annel0/cubeglobe/internal/logging"
	"github.com/annel0/cubeglobe/internal/render"
	"github.com/annel0/cubeglobe/internal/world"
)

// Одноразовый рендер: генерирует карту и сохраняет изображение в файл

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации")
	output := flag.String("o", "map.png", "файл результата (.png или .bmp)")
	format := flag.String("format", "png", "формат изображения: png или bmp")
	length := flag.Int("length", 0, "сторона карты в блоках (0 — из конфигурации)")
	seed := flag.Int64("seed", 0, "сид генерации")
	slices := flag.Bool("slices", false, "сохранить снимок каждого среза по X")
	flag.Parse()

	if err := logging.InitDefaultLogger("render"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		os.Exit(1)
	}

	params := cfg.Generator
	if *length > 0 {
		params.Length = *length
	}
	if *seed != 0 {
		params.Seed = *seed
	}

	var catalog *render.Catalog
	if cfg.Tiles.ConfigPath != "" {
		catalog, err = render.LoadCatalog(cfg.Tiles.ConfigPath)
	} else {
		catalog, err = render.DefaultCatalog()
	}
	if err != nil {
		logging.Error("❌ Ошибка загрузки каталога тайлов: %v", err)
		os.Exit(1)
	}

	gen, err := world.NewGenerator(params)
	if err != nil {
		logging.Error("❌ Неверные параметры генерации: %v", err)
		os.Exit(1)
	}

	comp := render.NewCompositor(catalog)

	if *slices {
		renderSlices(gen, comp, *output, *format)
		return
	}

	start := time.Now()
	grid := gen.Generate()
	logging.Info("🌍 Карта %dx%d сгенерирована за %s", params.Length, params.Length, time.Since(start))

	start = time.Now()
	canvas, err := comp.Render(grid)
	if err != nil {
		logging.Error("❌ Ошибка рендеринга: %v", err)
		os.Exit(1)
	}
	logging.Info("🖼  Изображение %dx%d отрендерено за %s", canvas.Width(), canvas.Height(), time.Since(start))

	if err := writeCanvas(canvas, *output, *format); err != nil {
		logging.Error("❌ Ошибка записи файла: %v", err)
		os.Exit(1)
	}
	logging.Info("✅ Результат сохранён в %s", *output)
}

// renderSlices сохраняет по изображению на каждый срез генерации.
// К имени файла перед расширением добавляется номер среза
func renderSlices(gen *world.Generator, comp *render.Compositor, output, format string) {
	grids := gen.GenerateSlices()
	for i, grid := range grids {
		canvas, err := comp.Render(grid)
		if err != nil {
			logging.Error("❌ Ошибка рендеринга среза %d: %v", i, err)
			os.Exit(1)
		}

		name := sliceName(output, i)
		if err := writeCanvas(canvas, name, format); err != nil {
			logging.Error("❌ Ошибка записи файла %s: %v", name, err)
			os.Exit(1)
		}
	}
	logging.Info("✅ Сохранено %d срезов", len(grids))
}

// sliceName добавляет номер среза перед расширением, с ведущими нулями
// для сортировки по имени
func sliceName(output string, i int) string {
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	return fmt.Sprintf("%s_%03d%s", base, i, ext)
}

func writeCanvas(canvas *render.Canvas, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "bmp" {
		return canvas.EncodeBMP(f)
	}
	return canvas.EncodePNG(f)
}
