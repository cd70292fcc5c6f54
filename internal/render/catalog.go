package render

import (
	"image"

	"github.com/annel0/cubeglobe/internal/world"
)

// Tile представляет один спрайт грани: изображение размером с ячейку
// тайла и смещение в пикселях при наложении на холст
type Tile struct {
	Image  image.Image
	Offset image.Point
}

// TileDef описывает один тайл при сборке каталога
type TileDef struct {
	Block  world.BlockID
	Face   Face
	Image  image.Image
	Offset image.Point
}

type tileKey struct {
	block world.BlockID
	face  Face
}

// Catalog хранит разрешённое соответствие (блок, грань) -> спрайт.
// Собирается один раз и далее неизменяем, поэтому один каталог можно
// разделять между любым числом одновременных вызовов рендера
type Catalog struct {
	tileWidth  int
	tileHeight int
	tiles      map[tileKey]Tile
}

// NewCatalog собирает каталог из списка тайлов.
//
// Правила проверки:
//   - размеры тайла положительные, высота больше половины ширины
//     (иначе у куба не остаётся места на боковые грани);
//   - каждый спрайт присутствует;
//   - у каждого непустого типа блока есть верхняя грань — минимум,
//     необходимый для корректного силуэта рельефа.
//
// Пустота тайлов не имеет: каталог её не описывает
func NewCatalog(tileWidth, tileHeight int, defs []TileDef) (*Catalog, error) {
	if tileWidth <= 0 || tileWidth%2 != 0 {
		return nil, &CatalogError{Reason: "ширина тайла должна быть положительной и чётной"}
	}
	if tileHeight <= tileWidth/2 {
		return nil, &CatalogError{Reason: "высота тайла должна превышать половину ширины"}
	}

	tiles := make(map[tileKey]Tile, len(defs))
	for _, def := range defs {
		if !def.Block.IsSolid() {
			return nil, &CatalogError{Block: def.Block, Face: def.Face, Reason: "пустота не может иметь тайлов"}
		}
		if def.Image == nil {
			return nil, &CatalogError{Block: def.Block, Face: def.Face, Reason: "спрайт не разрешён в пиксельные данные"}
		}
		tiles[tileKey{block: def.Block, face: def.Face}] = Tile{
			Image:  def.Image,
			Offset: def.Offset,
		}
	}

	// Верхняя грань обязательна для каждого непустого типа блока
	for _, b := range world.SolidBlocks() {
		if _, ok := tiles[tileKey{block: b, face: FaceTop}]; !ok {
			return nil, &CatalogError{Block: b, Face: FaceTop, Reason: "верхняя грань обязательна"}
		}
	}

	return &Catalog{
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		tiles:      tiles,
	}, nil
}

// TileWidth возвращает ширину тайла в пикселях
func (c *Catalog) TileWidth() int {
	return c.tileWidth
}

// TileHeight возвращает высоту тайла в пикселях
func (c *Catalog) TileHeight() int {
	return c.tileHeight
}

// Lookup возвращает тайл для грани блока. Второе значение false
// означает, что эта грань для данного блока не рисуется
func (c *Catalog) Lookup(block world.BlockID, face Face) (Tile, bool) {
	tile, ok := c.tiles[tileKey{block: block, face: face}]
	return tile, ok
}
