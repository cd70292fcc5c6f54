package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/annel0/cubeglobe/internal/world"
)

// TilesConfig — разобранный YAML-файл с описанием набора тайлов.
// Несколько тайлов могут лежать в одном файле-спрайтшите; координаты
// x, y задают положение ячейки тайла внутри листа
type TilesConfig struct {
	TileWidth  int         `yaml:"tile_width"`
	TileHeight int         `yaml:"tile_height"`
	BasePath   string      `yaml:"base_path"`
	Files      []TilesFile `yaml:"files"`
}

// TilesFile описывает один спрайтшит и тайлы внутри него
type TilesFile struct {
	Filename string      `yaml:"filename"`
	Tiles    []TileEntry `yaml:"tiles"`
}

// TileEntry описывает один тайл: тип блока, грань и положение в листе.
// Пустая грань считается верхней. OffsetX/OffsetY — смещение спрайта
// при наложении на холст
type TileEntry struct {
	Kind    string `yaml:"kind"`
	Face    string `yaml:"face"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	OffsetX int    `yaml:"offset_x"`
	OffsetY int    `yaml:"offset_y"`
}

// ParseTilesConfig разбирает YAML-описание набора тайлов
func ParseTilesConfig(data []byte) (*TilesConfig, error) {
	var cfg TilesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации тайлов: %w", err)
	}
	return &cfg, nil
}

// LoadCatalog читает конфигурацию тайлов из файла, загружает
// спрайтшиты и собирает каталог. Неразрешимая ссылка на спрайт или
// отсутствие обязательной верхней грани — ошибка конфигурации
func LoadCatalog(configPath string) (*Catalog, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации тайлов: %w", err)
	}

	cfg, err := ParseTilesConfig(data)
	if err != nil {
		return nil, err
	}
	return cfg.BuildCatalog()
}

// BuildCatalog загружает спрайтшиты конфигурации и собирает каталог
func (cfg *TilesConfig) BuildCatalog() (*Catalog, error) {
	defs := make([]TileDef, 0)

	for _, file := range cfg.Files {
		sheetPath := filepath.Join(cfg.BasePath, file.Filename)
		sheet, err := loadSheet(sheetPath)
		if err != nil {
			return nil, err
		}

		for _, entry := range file.Tiles {
			block, ok := world.ParseBlockID(entry.Kind)
			if !ok {
				return nil, &CatalogError{Reason: fmt.Sprintf("неизвестный тип блока %q", entry.Kind)}
			}
			face, ok := ParseFace(entry.Face)
			if !ok {
				return nil, &CatalogError{Block: block, Reason: fmt.Sprintf("неизвестная грань %q", entry.Face)}
			}

			sprite, err := cutSprite(sheet, entry.X, entry.Y, cfg.TileWidth, cfg.TileHeight)
			if err != nil {
				return nil, &CatalogError{Block: block, Face: face, Reason: err.Error()}
			}

			defs = append(defs, TileDef{
				Block:  block,
				Face:   face,
				Image:  sprite,
				Offset: image.Pt(entry.OffsetX, entry.OffsetY),
			})
		}
	}

	return NewCatalog(cfg.TileWidth, cfg.TileHeight, defs)
}

// loadSheet загружает PNG-спрайтшит с диска
func loadSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия спрайтшита %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования спрайтшита %s: %w", path, err)
	}
	return img, nil
}

// cutSprite вырезает ячейку тайла из спрайтшита в отдельный буфер
func cutSprite(sheet image.Image, x, y, w, h int) (*image.NRGBA, error) {
	rect := image.Rect(x, y, x+w, y+h)
	if !rect.In(sheet.Bounds()) {
		return nil, fmt.Errorf("ячейка (%d,%d) %dx%d выходит за пределы спрайтшита %v", x, y, w, h, sheet.Bounds())
	}

	sprite := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(sprite, sprite.Bounds(), sheet, rect.Min, draw.Src)
	return sprite, nil
}
