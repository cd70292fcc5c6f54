package noise

import (
	"github.com/aquilax/go-perlin"
)

// Параметры генератора шума Перлина
const (
	alpha   = 2.0      // Сглаживание шума
	beta    = 2.0      // Частота между октавами
	octaves = int32(3) // Количество октав
)

// Field представляет детерминированное двумерное поле градиентного шума.
// Поле не содержит изменяемого состояния: таблицы перестановок вычисляются
// один раз при создании, поэтому Sample можно безопасно вызывать из
// нескольких горутин одновременно
type Field struct {
	p    *perlin.Perlin
	seed int64
}

// NewField создаёт поле шума для указанного сида.
// Одинаковый сид всегда даёт одинаковое поле
func NewField(seed int64) *Field {
	return &Field{
		p:    perlin.NewPerlin(alpha, beta, octaves, seed),
		seed: seed,
	}
}

// Seed возвращает сид, с которым было создано поле
func (f *Field) Seed() int64 {
	return f.seed
}

// Sample возвращает значение шума в точке (x, y) в диапазоне [-1, 1].
// Чистая функция от (сид, x, y): одинаковые аргументы дают одинаковый результат
func (f *Field) Sample(x, y float64) float64 {
	v := f.p.Noise2D(x, y)

	// Библиотека может выходить за пределы единичного диапазона на доли
	// процента при суммировании октав, поэтому значение зажимается
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

// Sample01 возвращает значение шума, приведённое к диапазону [0, 1]
func (f *Field) Sample01(x, y float64) float64 {
	return (f.Sample(x, y) + 1.0) / 2.0
}
