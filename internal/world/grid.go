package world

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/annel0/cubeglobe/internal/vec"
)

// Grid представляет воксельную карту — плотный трёхмерный массив блоков
// размером L x L x H, где L — сторона квадратной площадки, H — высота.
// Порядок осей (x, y, z), z+ направлена вверх, z=0 — нижний слой.
//
// Grid заполняется генератором и после этого не изменяется: рендерер и
// хранилище работают с ним только на чтение, поэтому одну карту можно
// безопасно использовать из нескольких горутин
type Grid struct {
	length int
	height int
	blocks []BlockID
}

// NewGrid создаёт карту указанных размеров, заполненную пустотой
func NewGrid(length, height int) *Grid {
	return &Grid{
		length: length,
		height: height,
		blocks: make([]BlockID, length*length*height),
	}
}

// Length возвращает сторону квадратной площадки карты
func (g *Grid) Length() int {
	return g.length
}

// Height возвращает высоту карты в блоках
func (g *Grid) Height() int {
	return g.height
}

// InBounds проверяет, лежит ли координата внутри карты
func (g *Grid) InBounds(pos vec.Vec3) bool {
	return pos.X >= 0 && pos.X < g.length &&
		pos.Y >= 0 && pos.Y < g.length &&
		pos.Z >= 0 && pos.Z < g.height
}

func (g *Grid) index(pos vec.Vec3) int {
	return (pos.X*g.length+pos.Y)*g.height + pos.Z
}

// Get возвращает блок в указанной координате.
// Для координаты вне границ возвращается ErrOutOfBounds
func (g *Grid) Get(pos vec.Vec3) (BlockID, error) {
	if !g.InBounds(pos) {
		return BlockEmpty, fmt.Errorf("%w: (%d, %d, %d)", ErrOutOfBounds, pos.X, pos.Y, pos.Z)
	}
	return g.blocks[g.index(pos)], nil
}

// At возвращает блок в указанной координате, считая всё за границами
// карты пустотой. Удобно для проверки соседей у края площадки
func (g *Grid) At(pos vec.Vec3) BlockID {
	if !g.InBounds(pos) {
		return BlockEmpty
	}
	return g.blocks[g.index(pos)]
}

// set устанавливает блок. Доступен только генератору внутри пакета:
// после генерации карта считается замороженной
func (g *Grid) set(pos vec.Vec3, id BlockID) {
	g.blocks[g.index(pos)] = id
}

// Topmost возвращает z самого верхнего непустого блока столбца.
// Второе значение false, если столбец полностью пуст
func (g *Grid) Topmost(col vec.Vec2) (int, bool) {
	for z := g.height - 1; z >= 0; z-- {
		if g.At(vec.FromVec2(col, z)).IsSolid() {
			return z, true
		}
	}
	return 0, false
}

// EachColumn вызывает fn для каждого столбца площадки в порядке обхода
// (x, y). Порядок фиксирован, что делает обход детерминированным
func (g *Grid) EachColumn(fn func(col vec.Vec2)) {
	for x := 0; x < g.length; x++ {
		for y := 0; y < g.length; y++ {
			fn(vec.Vec2{X: x, Y: y})
		}
	}
}

// Column возвращает срез блоков столбца от z=0 вверх
func (g *Grid) Column(col vec.Vec2) []BlockID {
	out := make([]BlockID, g.height)
	for z := 0; z < g.height; z++ {
		out[z] = g.At(vec.FromVec2(col, z))
	}
	return out
}

// Clone возвращает глубокую копию карты
func (g *Grid) Clone() *Grid {
	cp := NewGrid(g.length, g.height)
	copy(cp.blocks, g.blocks)
	return cp
}

// Equal сравнивает две карты поблочно
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.length != other.length || g.height != other.height {
		return false
	}
	return bytes.Equal(blocksAsBytes(g.blocks), blocksAsBytes(other.blocks))
}

func blocksAsBytes(blocks []BlockID) []byte {
	out := make([]byte, len(blocks))
	for i, b := range blocks {
		out[i] = byte(b)
	}
	return out
}

// MarshalBinary сериализует карту: заголовок с размерами и плотный
// массив блоков. Формат используется хранилищем карт
func (g *Grid) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(g.length)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(g.height)); err != nil {
		return nil, err
	}
	buf.Write(blocksAsBytes(g.blocks))
	return buf.Bytes(), nil
}

// UnmarshalBinary восстанавливает карту из сериализованного представления
func (g *Grid) UnmarshalBinary(data []byte) error {
	buf := bytes.NewReader(data)
	var length, height uint32
	if err := binary.Read(buf, binary.LittleEndian, &length); err != nil {
		return fmt.Errorf("ошибка чтения заголовка карты: %w", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &height); err != nil {
		return fmt.Errorf("ошибка чтения заголовка карты: %w", err)
	}
	want := int(length) * int(length) * int(height)
	raw := make([]byte, buf.Len())
	if _, err := buf.Read(raw); err != nil {
		return fmt.Errorf("ошибка чтения блоков карты: %w", err)
	}
	if len(raw) != want {
		return fmt.Errorf("повреждённые данные карты: ожидалось %d блоков, получено %d", want, len(raw))
	}

	g.length = int(length)
	g.height = int(height)
	g.blocks = make([]BlockID, want)
	for i, b := range raw {
		if BlockID(b) >= blockCount {
			return fmt.Errorf("повреждённые данные карты: неизвестный тип блока %d", b)
		}
		g.blocks[i] = BlockID(b)
	}
	return nil
}
