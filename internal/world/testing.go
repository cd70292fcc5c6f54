package world

import (
	"github.com/annel0/cubeglobe/internal/vec"
)

// TestingGenerator — простой детерминированный генератор почти плоской
// карты. Это не тест, а генератор для тестов и диагностики: результат
// известен заранее и не зависит от шума.
//
// Минимальный размер — 6: меньшие значения Dim поднимаются до 6
type TestingGenerator struct {
	// Dim — сторона и высота кубической карты
	Dim int
}

// Generate создаёт кубическую карту: нижняя половина целиком заполнена
// скалой, над ней в центре — квадратное плато на один блок выше
func (t *TestingGenerator) Generate() *Grid {
	dim := t.Dim
	if dim < 6 {
		dim = 6
	}

	grid := NewGrid(dim, dim)
	halfway := dim / 2

	grid.EachColumn(func(col vec.Vec2) {
		for z := 0; z < halfway; z++ {
			grid.set(vec.FromVec2(col, z), BlockRock)
		}
		if col.X >= 2 && col.X < dim-2 && col.Y >= 2 && col.Y < dim-2 {
			grid.set(vec.FromVec2(col, halfway), BlockRock)
		}
	})
	return grid
}

// GridFromColumns строит карту по явному описанию столбцов: fn
// возвращает блоки столбца от z=0 вверх, недостающий хвост считается
// пустотой. Используется в тестах рендера, где нужна точная геометрия
func GridFromColumns(length, height int, fn func(col vec.Vec2) []BlockID) *Grid {
	grid := NewGrid(length, height)
	grid.EachColumn(func(col vec.Vec2) {
		blocks := fn(col)
		for z := 0; z < len(blocks) && z < height; z++ {
			grid.set(vec.FromVec2(col, z), blocks[z])
		}
	})
	return grid
}
