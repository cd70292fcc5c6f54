package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/annel0/cubeglobe/internal/vec"
	"github.com/annel0/cubeglobe/internal/world"
)

// Compositor проецирует воксельную карту на пиксельный холст.
//
// Проекция фиксированная изометрическая 2:1: рост x сдвигает блок
// вправо-вниз, рост y — влево-вниз, рост z — строго вверх. Шаги в
// пикселях выводятся из размеров тайла каталога, поэтому тайлы
// стыкуются без зазоров.
//
// Порядок наложения — единственный инвариант, обеспечивающий
// корректное перекрытие без буфера глубины: блоки рисуются строго по
// возрастанию ключа глубины (x+y, затем z). Блок может заслонять
// только блоки с меньшим ключом, поэтому более близкие и более
// высокие блоки всегда ложатся поверх уже нарисованных
type Compositor struct {
	catalog    *Catalog
	background color.Color
}

// NewCompositor создаёт рендерер поверх собранного каталога тайлов
func NewCompositor(catalog *Catalog) *Compositor {
	return &Compositor{
		catalog:    catalog,
		background: DefaultBackground,
	}
}

// SetBackground задаёт цвет фона холста
func (c *Compositor) SetBackground(bg color.Color) {
	c.background = bg
}

// Render рисует карту и возвращает холст. Результат детерминирован:
// одинаковая карта и каталог дают попиксельно одинаковое изображение.
// Если у видимой грани блока нет тайла, рендер целиком завершается
// ошибкой RenderError
func (c *Compositor) Render(grid *world.Grid) (*Canvas, error) {
	length := grid.Length()
	height := grid.Height()

	tileW := c.catalog.TileWidth()
	tileH := c.catalog.TileHeight()
	topH := tileW / 2     // пиксельная высота верхнего ромба при проекции 2:1
	sideH := tileH - topH // пиксельная высота боковых граней

	// Диагональ площадки по вертикали плюс бока ближнего тайла
	floorH := length*topH + sideH

	// Запас по краям, чтобы ни один тайл не обрезался
	canvasW := tileW*length + tileW*2
	canvasH := floorH + sideH*height + tileH*2

	canvas := newCanvas(canvasW, canvasH, c.background)

	// Начало координат: столбец (0,0) на нижнем слое. По горизонтали —
	// середина холста со сдвигом на полтайла влево, по вертикали — над
	// нижним запасом и высотой нижнего этажа
	origin := image.Pt(
		canvasW/2-tileW/2,
		canvasH-tileH-floorH,
	)

	tops := topmostIndex(grid)

	// Обход строго по ключу глубины: сначала дальние диагонали
	// (меньшая сумма x+y), внутри диагонали — снизу вверх
	for depth := 0; depth <= 2*(length-1); depth++ {
		for z := 0; z < height; z++ {
			minX := depth - length + 1
			if minX < 0 {
				minX = 0
			}
			for x := minX; x <= depth && x < length; x++ {
				col := vec.Vec2{X: x, Y: depth - x}
				pos := vec.FromVec2(col, z)

				block := grid.At(pos)
				if !block.IsSolid() {
					continue
				}
				if err := c.drawBlock(canvas, grid, tops, pos, block, origin); err != nil {
					return nil, err
				}
			}
		}
	}

	return canvas, nil
}

// drawBlock рисует видимые грани одного блока
func (c *Compositor) drawBlock(canvas *Canvas, grid *world.Grid, tops map[vec.Vec2]int, pos vec.Vec3, block world.BlockID, origin image.Point) error {
	at := c.project(origin, pos)

	// Боковые грани видны, когда сосед в соответствующем "переднем"
	// направлении проекции пуст или принадлежит другому типу блока:
	// так обнажаются обрывы и кромки воды. За границей площадки
	// сосед считается пустотой
	if neighbor := grid.At(pos.Add(vec.Vec3{Y: 1})); neighbor != block {
		if err := c.drawFace(canvas, block, FaceLeft, at); err != nil {
			return err
		}
	}
	if neighbor := grid.At(pos.Add(vec.Vec3{X: 1})); neighbor != block {
		if err := c.drawFace(canvas, block, FaceRight, at); err != nil {
			return err
		}
	}

	// Верхнюю грань даёт только самый верхний непустой блок столбца
	if top, ok := tops[pos.ToVec2()]; ok && top == pos.Z {
		if err := c.drawFace(canvas, block, FaceTop, at); err != nil {
			return err
		}
	}

	return nil
}

// drawFace накладывает спрайт грани на холст с альфа-смешиванием.
// Полупрозрачные спрайты (вода) смешиваются с уже нарисованным дальним
// содержимым, а не затирают его
func (c *Compositor) drawFace(canvas *Canvas, block world.BlockID, face Face, at image.Point) error {
	tile, ok := c.catalog.Lookup(block, face)
	if !ok {
		return &RenderError{Block: block, Face: face}
	}

	dst := image.Rect(
		at.X+tile.Offset.X,
		at.Y+tile.Offset.Y,
		at.X+tile.Offset.X+c.catalog.TileWidth(),
		at.Y+tile.Offset.Y+c.catalog.TileHeight(),
	)
	draw.Draw(canvas.Image(), dst, tile.Image, tile.Image.Bounds().Min, draw.Over)
	return nil
}

// project возвращает пиксельную позицию тайла блока.
// Верхние ромбы тайлов имеют пропорцию 2:1: сдвиг по диагонали
// площадки равен половине ширины тайла по горизонтали и четверти —
// по вертикали; этаж выше сдвигается вверх на высоту боковой грани
func (c *Compositor) project(origin image.Point, pos vec.Vec3) image.Point {
	tileW := c.catalog.TileWidth()
	sideH := c.catalog.TileHeight() - tileW/2
	return image.Pt(
		origin.X+(pos.X-pos.Y)*(tileW/2),
		origin.Y+(pos.X+pos.Y)*(tileW/4)-pos.Z*sideH,
	)
}

// topmostIndex строит карту высот: z верхнего непустого блока каждого
// столбца. Столбцы без блоков в карту не попадают
func topmostIndex(grid *world.Grid) map[vec.Vec2]int {
	tops := make(map[vec.Vec2]int, grid.Length()*grid.Length())
	grid.EachColumn(func(col vec.Vec2) {
		if z, ok := grid.Topmost(col); ok {
			tops[col] = z
		}
	})
	return tops
}
