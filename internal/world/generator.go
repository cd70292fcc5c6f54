package world

import (
	"math"

	"github.com/annel0/cubeglobe/internal/noise"
	"github.com/annel0/cubeglobe/internal/vec"
)

// Generator генерирует воксельный ландшафт по полю шума.
//
// Высота каждого столбца получается из значения шума в его координатах,
// затем столбец заполняется по порогам: почва с поверхностным покрытием
// в низинах, скала выше границы почвы, вода в затопленных низинах.
// Генерация полностью детерминирована: одинаковые параметры дают
// побитово идентичные карты
type Generator struct {
	params GenParams
	field  *noise.Field
}

// NewGenerator создаёт генератор. Параметры проверяются сразу:
// при ошибке конфигурации генератор не создаётся
func NewGenerator(params GenParams) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		params: params,
		field:  noise.NewField(params.Seed),
	}, nil
}

// Params возвращает параметры генератора
func (g *Generator) Params() GenParams {
	return g.params
}

// Generate создаёт и заполняет карту
func (g *Generator) Generate() *Grid {
	grid := NewGrid(g.params.Length, g.params.GridHeight())
	grid.EachColumn(func(col vec.Vec2) {
		g.fillColumn(grid, col)
	})
	return grid
}

// GenerateSlices генерирует карту, снимая копию после заполнения каждого
// среза по оси X. Снимки показывают блоки, скрытые в финальном рендере,
// что полезно для диагностики
func (g *Generator) GenerateSlices() []*Grid {
	grid := NewGrid(g.params.Length, g.params.GridHeight())
	slices := make([]*Grid, 0, g.params.Length)

	for x := 0; x < g.params.Length; x++ {
		for y := 0; y < g.params.Length; y++ {
			g.fillColumn(grid, vec.Vec2{X: x, Y: y})
		}
		slices = append(slices, grid.Clone())
	}
	return slices
}

// columnHeight возвращает высоту столбца в координате col
func (g *Generator) columnHeight(col vec.Vec2) int {
	n := g.field.Sample01(
		float64(col.X)*g.params.Frequency,
		float64(col.Y)*g.params.Frequency,
	)
	return mapHeight(n, g.params.MaxTerrainHeight())
}

// mapHeight отображает нормированное значение шума [0, 1] в высоту
// столбца [0, maxHeight]. Отображение линейное: для корректности
// важна только монотонность, не форма кривой
func mapHeight(n float64, maxHeight int) int {
	h := int(math.Round(n * float64(maxHeight)))
	if h < 0 {
		return 0
	}
	if h > maxHeight {
		return maxHeight
	}
	return h
}

// fillColumn заполняет один столбец карты по порогам параметров
func (g *Generator) fillColumn(grid *Grid, col vec.Vec2) {
	h := g.columnHeight(col)
	cutoff := g.params.MinSoilCutoff
	waterLevel := g.params.MaxWaterLevel

	switch {
	case h == 0:
		// Пустой столбец, возможно будет затоплен ниже

	case h <= cutoff:
		// Тело из почвы, верхний блок — поверхностное покрытие.
		// Столбец из одного блока остаётся почвой
		for z := 0; z < h-1; z++ {
			grid.set(vec.FromVec2(col, z), BlockSoil)
		}
		if h == 1 {
			grid.set(vec.FromVec2(col, 0), BlockSoil)
		} else {
			grid.set(vec.FromVec2(col, h-1), g.surfaceCover(h))
		}

	default:
		// Высокий рельеф: почва до границы, выше — голая скала
		for z := 0; z < cutoff; z++ {
			grid.set(vec.FromVec2(col, z), BlockSoil)
		}
		for z := cutoff; z < h; z++ {
			grid.set(vec.FromVec2(col, z), BlockRock)
		}
	}

	// Низины ниже уровня воды затапливаются
	for z := h; z < waterLevel; z++ {
		grid.set(vec.FromVec2(col, z), BlockWater)
	}
}

// surfaceCover выбирает поверхностное покрытие по высоте столбца:
// у кромки воды и под водой — песок, выше — трава
func (g *Generator) surfaceCover(h int) BlockID {
	if h <= g.params.MaxWaterLevel+1 {
		return BlockSand
	}
	return BlockGrass
}
