package render

import (
	"image"
	"image/color"

	"github.com/annel0/cubeglobe/internal/world"
)

// Размеры тайлов встроенного набора по умолчанию
const (
	DefaultTileWidth  = 32
	DefaultTileHeight = 32
)

// Базовые цвета блоков встроенного набора. Вода полупрозрачная:
// сквозь неё просвечивают дно и затопленные склоны
var defaultColors = map[world.BlockID]color.NRGBA{
	world.BlockWater: {R: 63, G: 118, B: 228, A: 168},
	world.BlockSoil:  {R: 134, G: 96, B: 67, A: 255},
	world.BlockRock:  {R: 136, G: 140, B: 141, A: 255},
	world.BlockGrass: {R: 96, G: 161, B: 75, A: 255},
	world.BlockSand:  {R: 219, G: 211, B: 160, A: 255},
}

// DefaultCatalog собирает встроенный каталог с процедурно
// нарисованными плоскими спрайтами граней. Позволяет запускать весь
// конвейер без внешних ассетов
func DefaultCatalog() (*Catalog, error) {
	return DefaultCatalogSized(DefaultTileWidth, DefaultTileHeight)
}

// DefaultCatalogSized собирает встроенный каталог с тайлами указанных
// размеров
func DefaultCatalogSized(tileWidth, tileHeight int) (*Catalog, error) {
	defs := make([]TileDef, 0, len(defaultColors)*len(AllFaces()))
	for _, block := range world.SolidBlocks() {
		base, ok := defaultColors[block]
		if !ok {
			continue
		}
		for _, face := range AllFaces() {
			defs = append(defs, TileDef{
				Block: block,
				Face:  face,
				Image: DrawFaceSprite(face, tileWidth, tileHeight, base),
			})
		}
	}
	return NewCatalog(tileWidth, tileHeight, defs)
}

// DrawFaceSprite рисует плоский спрайт одной грани куба в ячейке
// размером tileWidth x tileHeight. Верхняя грань — ромб в верхней части
// ячейки, боковые — параллелограммы под его левым и правым рёбрами.
// Боковые грани затемняются, имитируя рассеянное освещение
func DrawFaceSprite(face Face, tileWidth, tileHeight int, base color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tileWidth, tileHeight))
	topH := tileWidth / 2
	sideH := tileHeight - topH

	switch face {
	case FaceTop:
		drawTopDiamond(img, tileWidth, topH, base)
	case FaceLeft:
		drawSideFace(img, tileWidth, topH, sideH, shade(base, 0.80), true)
	case FaceRight:
		drawSideFace(img, tileWidth, topH, sideH, shade(base, 0.60), false)
	}
	return img
}

// drawTopDiamond заполняет ромб шириной w и высотой topH в верхней
// части ячейки
func drawTopDiamond(img *image.NRGBA, w, topH int, c color.NRGBA) {
	cx := float64(w)/2 - 0.5
	cy := float64(topH)/2 - 0.5
	for py := 0; py < topH; py++ {
		for px := 0; px < w; px++ {
			dx := (float64(px) - cx) / (float64(w) / 2)
			dy := (float64(py) - cy) / (float64(topH) / 2)
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx+dy <= 1.0 {
				img.SetNRGBA(px, py, c)
			}
		}
	}
}

// drawSideFace заполняет параллелограмм боковой грани. Левая грань
// занимает левую половину ячейки, правая — правую; верхнее ребро
// спускается от бокового угла ромба к его нижнему углу
func drawSideFace(img *image.NRGBA, w, topH, sideH int, c color.NRGBA, left bool) {
	half := w / 2
	for i := 0; i < half; i++ {
		var px int
		if left {
			px = i
		} else {
			px = w - 1 - i
		}

		// Верхнее ребро: от середины ромба (y=topH/2) у внешнего края
		// вниз к нижнему углу ромба (y=topH) у середины тайла
		topEdge := topH/2 + (i*topH)/w
		for py := topEdge; py < topEdge+sideH && py < img.Bounds().Dy(); py++ {
			img.SetNRGBA(px, py, c)
		}
	}
}

// shade затемняет цвет, сохраняя альфу
func shade(c color.NRGBA, k float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
