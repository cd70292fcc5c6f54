package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/annel0/cubeglobe/internal/vec"
	"github.com/annel0/cubeglobe/internal/world"
)

// Синтетический тайл: полностью непрозрачный квадрат на всю ячейку.
// Квадраты намеренно не повторяют форму граней куба: так перекрытия
// между соседними блоками легко проверять по одному пикселю
func solidTile(c color.NRGBA, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

const (
	testTileW = 8
	testTileH = 8
)

// Палитра синтетического каталога: уникальный цвет на каждую пару
// (блок, грань), чтобы по пикселю было видно, кто нарисован последним
var testPalette = map[world.BlockID]map[Face]color.NRGBA{
	world.BlockSoil: {
		FaceTop:   {R: 10, G: 200, B: 10, A: 255},
		FaceLeft:  {R: 10, G: 150, B: 10, A: 255},
		FaceRight: {R: 10, G: 100, B: 10, A: 255},
	},
	world.BlockRock: {
		FaceTop:   {R: 200, G: 200, B: 200, A: 255},
		FaceLeft:  {R: 150, G: 150, B: 150, A: 255},
		FaceRight: {R: 100, G: 100, B: 100, A: 255},
	},
	world.BlockWater: {
		FaceTop:   {R: 10, G: 10, B: 250, A: 255},
		FaceLeft:  {R: 10, G: 10, B: 180, A: 255},
		FaceRight: {R: 10, G: 10, B: 120, A: 255},
	},
	world.BlockGrass: {
		FaceTop:   {R: 250, G: 250, B: 10, A: 255},
		FaceLeft:  {R: 180, G: 180, B: 10, A: 255},
		FaceRight: {R: 120, G: 120, B: 10, A: 255},
	},
	world.BlockSand: {
		FaceTop:   {R: 250, G: 10, B: 250, A: 255},
		FaceLeft:  {R: 180, G: 10, B: 180, A: 255},
		FaceRight: {R: 120, G: 10, B: 120, A: 255},
	},
}

// testCatalog собирает каталог из синтетических квадратных тайлов
func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	defs := make([]TileDef, 0)
	for block, faces := range testPalette {
		for face, c := range faces {
			defs = append(defs, TileDef{
				Block: block,
				Face:  face,
				Image: solidTile(c, testTileW, testTileH),
			})
		}
	}

	catalog, err := NewCatalog(testTileW, testTileH, defs)
	if err != nil {
		t.Fatalf("Ошибка сборки тестового каталога: %v", err)
	}
	return catalog
}

func pixelAt(canvas *Canvas, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(canvas.Image().At(x, y)).(color.NRGBA)
}

// testOrigin повторяет вычисление начала координат рендерера для
// проверки попадания тайлов в ожидаемые пиксели
func testOrigin(length, height int) image.Point {
	topH := testTileW / 2
	sideH := testTileH - topH
	floorH := length*topH + sideH
	canvasW := testTileW*length + testTileW*2
	canvasH := floorH + sideH*height + testTileH*2
	return image.Pt(canvasW/2-testTileW/2, canvasH-testTileH-floorH)
}

func TestRenderSingleBlock(t *testing.T) {
	grid := world.GridFromColumns(1, 1, func(col vec.Vec2) []world.BlockID {
		return []world.BlockID{world.BlockRock}
	})

	comp := NewCompositor(testCatalog(t))
	comp.SetBackground(color.NRGBA{A: 255}) // чёрный фон для подсчёта

	canvas, err := comp.Render(grid)
	if err != nil {
		t.Fatalf("Ошибка рендера: %v", err)
	}

	origin := testOrigin(1, 1)

	// Единственный блок: левая, правая и верхняя грани в одной ячейке,
	// последней рисуется верхняя
	got := pixelAt(canvas, origin.X+3, origin.Y+3)
	want := testPalette[world.BlockRock][FaceTop]
	if got != want {
		t.Errorf("Ожидался цвет верхней грани скалы %v в ячейке тайла, получен %v", want, got)
	}

	// Вне ячейки тайла остаётся фон
	count := 0
	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			if pixelAt(canvas, x, y) != (color.NRGBA{A: 255}) {
				count++
				rect := image.Rect(origin.X, origin.Y, origin.X+testTileW, origin.Y+testTileH)
				if !image.Pt(x, y).In(rect) {
					t.Fatalf("Пиксель (%d,%d) вне ячейки единственного тайла %v", x, y, rect)
				}
			}
		}
	}
	if count != testTileW*testTileH {
		t.Errorf("Ожидалось %d закрашенных пикселей, получено %d", testTileW*testTileH, count)
	}
}

func TestRenderDepthOrderColumnStack(t *testing.T) {
	// Столбец из почвы со скалой сверху: при равной сумме x+y нижние
	// блоки рисуются раньше, верхний должен перекрыть нижний
	grid := world.GridFromColumns(1, 2, func(col vec.Vec2) []world.BlockID {
		return []world.BlockID{world.BlockSoil, world.BlockRock}
	})

	canvas, err := NewCompositor(testCatalog(t)).Render(grid)
	if err != nil {
		t.Fatalf("Ошибка рендера: %v", err)
	}

	origin := testOrigin(1, 2)
	sideH := testTileH - testTileW/2

	// Зона перекрытия ячеек z=0 и z=1: верх ячейки z=0
	overlap := pixelAt(canvas, origin.X+1, origin.Y+1)
	want := testPalette[world.BlockRock][FaceTop]
	if overlap != want {
		t.Errorf("В зоне перекрытия ожидался верхний блок %v, получен %v", want, overlap)
	}

	// Ниже зоны перекрытия виден нижний блок; верхняя грань у него не
	// рисуется (он не самый верхний), последней идёт правая грань
	below := pixelAt(canvas, origin.X+1, origin.Y+testTileH-sideH+1)
	wantBelow := testPalette[world.BlockSoil][FaceRight]
	if below != wantBelow {
		t.Errorf("Под перекрытием ожидалась грань нижнего блока %v, получена %v", wantBelow, below)
	}
}

func TestRenderCliffAndWaterScenario(t *testing.T) {
	// Два соседних столбца высотой 5 и 2, вода до уровня 3:
	// короткий столбец затоплен, между столбцами виден обрыв
	grid := world.GridFromColumns(2, 5, func(col vec.Vec2) []world.BlockID {
		switch col {
		case vec.Vec2{X: 0, Y: 0}:
			return []world.BlockID{world.BlockSoil, world.BlockSoil, world.BlockSoil, world.BlockSoil, world.BlockSoil}
		case vec.Vec2{X: 1, Y: 0}:
			return []world.BlockID{world.BlockSoil, world.BlockSoil, world.BlockWater}
		default:
			return nil
		}
	})

	// Проверяем затопление: вода на z=2 у короткого столбца
	if b := grid.At(vec.Vec3{X: 1, Y: 0, Z: 2}); b != world.BlockWater {
		t.Fatalf("Короткий столбец должен быть затоплен, на z=2 получен %s", b)
	}

	canvas, err := NewCompositor(testCatalog(t)).Render(grid)
	if err != nil {
		t.Fatalf("Ошибка рендера: %v", err)
	}

	origin := testOrigin(2, 5)
	sideH := testTileH - testTileW/2

	// Ячейка блока (0,0,3) высокого столбца: x в [12,20), y в [16,24)
	// относительно origin (12,28). Левая её часть не перекрывается
	// ближним столбцом — там виден обрыв (правая грань почвы)
	cliff := pixelAt(canvas, origin.X+1, origin.Y-3*sideH+5)
	wantCliff := testPalette[world.BlockSoil][FaceRight]
	if cliff != wantCliff {
		t.Errorf("Ожидалась грань обрыва %v, получена %v", wantCliff, cliff)
	}

	// Зона перекрытия дальнего блока (0,0,3) и ближней воды (1,0,2):
	// ближний блок обязан быть нарисован позже
	overlap := pixelAt(canvas, origin.X+testTileW/2+1, origin.Y+2-2*sideH+1)
	wantWater := testPalette[world.BlockWater][FaceTop]
	if overlap != wantWater {
		t.Errorf("Ближняя вода должна перекрывать дальний склон: ожидалось %v, получено %v", wantWater, overlap)
	}
}

func TestRenderDepthOrderAdjacentColumns(t *testing.T) {
	// Два соседних столбца одинаковой высоты разных типов: ближний
	// (большая сумма x+y) рисуется позже и перекрывает дальний
	grid := world.GridFromColumns(2, 1, func(col vec.Vec2) []world.BlockID {
		if col.X == 0 && col.Y == 0 {
			return []world.BlockID{world.BlockRock}
		}
		if col.X == 1 && col.Y == 0 {
			return []world.BlockID{world.BlockSoil}
		}
		return nil
	})

	canvas, err := NewCompositor(testCatalog(t)).Render(grid)
	if err != nil {
		t.Fatalf("Ошибка рендера: %v", err)
	}

	origin := testOrigin(2, 1)

	// Ячейка (1,0): сдвиг на (+w/2, +w/4) от (0,0). Пиксель в зоне
	// перекрытия должен принадлежать ближнему столбцу
	overlapX := origin.X + testTileW/2 + 1
	overlapY := origin.Y + testTileW/4 + 1
	got := pixelAt(canvas, overlapX, overlapY)
	want := testPalette[world.BlockSoil][FaceTop]
	if got != want {
		t.Errorf("Ближний блок должен перекрывать дальний: ожидалось %v, получено %v", want, got)
	}

	// Неперекрытая часть дальнего блока видна
	far := pixelAt(canvas, origin.X+1, origin.Y+1)
	wantFar := testPalette[world.BlockRock][FaceTop]
	if far != wantFar {
		t.Errorf("Дальний блок должен остаться видимым слева: ожидалось %v, получено %v", wantFar, far)
	}
}

func TestRenderMissingSideFace(t *testing.T) {
	// Каталог только с верхними гранями: у блока на открытой площадке
	// видны боковые грани, рендер должен упасть с RenderError
	defs := make([]TileDef, 0)
	for block, faces := range testPalette {
		defs = append(defs, TileDef{
			Block: block,
			Face:  FaceTop,
			Image: solidTile(faces[FaceTop], testTileW, testTileH),
		})
	}
	catalog, err := NewCatalog(testTileW, testTileH, defs)
	if err != nil {
		t.Fatalf("Ошибка сборки каталога: %v", err)
	}

	grid := world.GridFromColumns(1, 1, func(col vec.Vec2) []world.BlockID {
		return []world.BlockID{world.BlockSoil}
	})

	_, err = NewCompositor(catalog).Render(grid)
	if err == nil {
		t.Fatal("Ожидалась ошибка рендера для отсутствующей боковой грани")
	}

	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Ожидался RenderError, получено %T: %v", err, err)
	}
	if renderErr.Block != world.BlockSoil {
		t.Errorf("Ошибка должна называть блок soil, получен %s", renderErr.Block)
	}
	if renderErr.Face != FaceLeft && renderErr.Face != FaceRight {
		t.Errorf("Ошибка должна называть боковую грань, получена %s", renderErr.Face)
	}
}

func TestRenderDeterministic(t *testing.T) {
	grid := (&world.TestingGenerator{Dim: 8}).Generate()
	comp := NewCompositor(testCatalog(t))

	c1, err := comp.Render(grid)
	if err != nil {
		t.Fatalf("Ошибка рендера: %v", err)
	}
	c2, err := comp.Render(grid)
	if err != nil {
		t.Fatalf("Ошибка рендера: %v", err)
	}

	if !bytes.Equal(c1.Image().Pix, c2.Image().Pix) {
		t.Error("Повторный рендер той же карты дал другое изображение")
	}
}

func TestRenderTranslucentWaterBlends(t *testing.T) {
	// Полупрозрачная вода поверх дна: пиксель воды должен быть
	// смешан с нижележащим содержимым, а не затирать его
	halfWater := solidTile(color.NRGBA{R: 0, G: 0, B: 200, A: 128}, testTileW, testTileH)

	defs := []TileDef{
		{Block: world.BlockWater, Face: FaceTop, Image: halfWater},
		{Block: world.BlockWater, Face: FaceLeft, Image: halfWater},
		{Block: world.BlockWater, Face: FaceRight, Image: halfWater},
	}
	for block, faces := range testPalette {
		if block == world.BlockWater {
			continue
		}
		for face, c := range faces {
			defs = append(defs, TileDef{Block: block, Face: face, Image: solidTile(c, testTileW, testTileH)})
		}
	}
	catalog, err := NewCatalog(testTileW, testTileH, defs)
	if err != nil {
		t.Fatalf("Ошибка сборки каталога: %v", err)
	}

	grid := world.GridFromColumns(1, 2, func(col vec.Vec2) []world.BlockID {
		return []world.BlockID{world.BlockSoil, world.BlockWater}
	})

	canvas, err := NewCompositor(catalog).Render(grid)
	if err != nil {
		t.Fatalf("Ошибка рендера: %v", err)
	}

	origin := testOrigin(1, 2)

	// Зона перекрытия воды (z=1) и почвы (z=0): цвет должен быть
	// смесью, не чистым цветом воды и не чистым цветом почвы
	got := pixelAt(canvas, origin.X+1, origin.Y+1)
	soil := testPalette[world.BlockSoil][FaceRight]
	if got == soil {
		t.Error("Вода не нарисована поверх почвы")
	}
	if got.A != 255 {
		t.Errorf("Смешанный пиксель должен быть непрозрачным, альфа %d", got.A)
	}
	if got.B <= soil.B {
		t.Errorf("Смешанный пиксель должен получить синий вклад воды: %v", got)
	}
	if got.B >= 200 {
		t.Errorf("Пиксель не должен быть чистым цветом воды: %v", got)
	}
}
