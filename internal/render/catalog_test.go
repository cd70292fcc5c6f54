package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/annel0/cubeglobe/internal/world"
)

func fullDefs(w, h int) []TileDef {
	defs := make([]TileDef, 0)
	for _, block := range world.SolidBlocks() {
		for _, face := range AllFaces() {
			defs = append(defs, TileDef{
				Block: block,
				Face:  face,
				Image: solidTile(color.NRGBA{R: uint8(block), G: uint8(face), A: 255}, w, h),
			})
		}
	}
	return defs
}

func TestCatalogBuild(t *testing.T) {
	catalog, err := NewCatalog(24, 24, fullDefs(24, 24))
	if err != nil {
		t.Fatalf("Ошибка сборки каталога: %v", err)
	}

	if catalog.TileWidth() != 24 || catalog.TileHeight() != 24 {
		t.Errorf("Ожидались размеры тайла 24x24, получено %dx%d", catalog.TileWidth(), catalog.TileHeight())
	}

	tile, ok := catalog.Lookup(world.BlockRock, FaceTop)
	if !ok {
		t.Fatal("Верхняя грань скалы должна присутствовать")
	}
	if tile.Image == nil {
		t.Error("Тайл должен содержать спрайт")
	}
}

func TestCatalogMissingTopFace(t *testing.T) {
	// Убираем верхнюю грань воды: сборка должна упасть с ошибкой,
	// называющей блок и грань
	defs := make([]TileDef, 0)
	for _, def := range fullDefs(24, 24) {
		if def.Block == world.BlockWater && def.Face == FaceTop {
			continue
		}
		defs = append(defs, def)
	}

	_, err := NewCatalog(24, 24, defs)
	if err == nil {
		t.Fatal("Ожидалась ошибка для каталога без верхней грани воды")
	}

	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("Ожидался CatalogError, получено %T: %v", err, err)
	}
	if catErr.Block != world.BlockWater || catErr.Face != FaceTop {
		t.Errorf("Ошибка должна называть воду и верхнюю грань, получено %s/%s", catErr.Block, catErr.Face)
	}
}

func TestCatalogRejectsBadTileSize(t *testing.T) {
	if _, err := NewCatalog(0, 24, nil); err == nil {
		t.Error("Нулевая ширина тайла должна отклоняться")
	}
	if _, err := NewCatalog(25, 30, nil); err == nil {
		t.Error("Нечётная ширина тайла должна отклоняться")
	}
	if _, err := NewCatalog(24, 12, nil); err == nil {
		t.Error("Высота не больше половины ширины должна отклоняться")
	}
}

func TestCatalogRejectsEmptyBlockTiles(t *testing.T) {
	defs := append(fullDefs(24, 24), TileDef{
		Block: world.BlockEmpty,
		Face:  FaceTop,
		Image: solidTile(color.NRGBA{A: 255}, 24, 24),
	})

	if _, err := NewCatalog(24, 24, defs); err == nil {
		t.Error("Тайл для пустоты должен отклоняться")
	}
}

func TestCatalogRejectsNilSprite(t *testing.T) {
	defs := append(fullDefs(24, 24), TileDef{
		Block: world.BlockRock,
		Face:  FaceLeft,
	})

	if _, err := NewCatalog(24, 24, defs); err == nil {
		t.Error("Неразрешённый спрайт должен отклоняться")
	}
}

func TestCatalogLookupMiss(t *testing.T) {
	// Каталог без боковых граней травы: Lookup честно сообщает об
	// отсутствии, решение об ошибке принимает рендерер
	defs := make([]TileDef, 0)
	for _, def := range fullDefs(24, 24) {
		if def.Block == world.BlockGrass && def.Face != FaceTop {
			continue
		}
		defs = append(defs, def)
	}

	catalog, err := NewCatalog(24, 24, defs)
	if err != nil {
		t.Fatalf("Каталог без боковых граней должен собираться: %v", err)
	}

	if _, ok := catalog.Lookup(world.BlockGrass, FaceLeft); ok {
		t.Error("Отсутствующая грань не должна находиться")
	}
	if _, ok := catalog.Lookup(world.BlockEmpty, FaceTop); ok {
		t.Error("Пустота не должна иметь тайлов")
	}
}

func TestCatalogTileOffset(t *testing.T) {
	defs := fullDefs(24, 24)
	defs[0].Offset = image.Pt(3, -2)

	catalog, err := NewCatalog(24, 24, defs)
	if err != nil {
		t.Fatalf("Ошибка сборки каталога: %v", err)
	}

	tile, ok := catalog.Lookup(defs[0].Block, defs[0].Face)
	if !ok {
		t.Fatal("Тайл со смещением должен присутствовать")
	}
	if tile.Offset != image.Pt(3, -2) {
		t.Errorf("Ожидалось смещение (3,-2), получено %v", tile.Offset)
	}
}
