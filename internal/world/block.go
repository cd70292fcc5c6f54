package world

// BlockID определяет тип блока в карте.
// Набор типов закрытый: генератор и рендерер знают все значения заранее
type BlockID uint8

const (
	// BlockEmpty — пустая ячейка (воздух), значение по умолчанию
	BlockEmpty BlockID = iota
	// BlockWater — вода, заполняет низины до уровня воды
	BlockWater
	// BlockSoil — почва, основное тело невысоких столбцов
	BlockSoil
	// BlockRock — скала, появляется выше границы почвы
	BlockRock
	// BlockGrass — травяное покрытие на поверхности почвы
	BlockGrass
	// BlockSand — песчаное покрытие у кромки воды
	BlockSand

	blockCount
)

// String возвращает строковое представление типа блока
func (b BlockID) String() string {
	switch b {
	case BlockEmpty:
		return "empty"
	case BlockWater:
		return "water"
	case BlockSoil:
		return "soil"
	case BlockRock:
		return "rock"
	case BlockGrass:
		return "grass"
	case BlockSand:
		return "sand"
	default:
		return "unknown"
	}
}

// IsSolid сообщает, занимает ли блок ячейку (всё, кроме пустоты)
func (b BlockID) IsSolid() bool {
	return b != BlockEmpty
}

// IsSurfaceCover сообщает, является ли блок поверхностным покрытием
func (b BlockID) IsSurfaceCover() bool {
	return b == BlockGrass || b == BlockSand
}

// AllBlocks возвращает все типы блоков, включая пустоту
func AllBlocks() []BlockID {
	blocks := make([]BlockID, 0, blockCount)
	for b := BlockID(0); b < blockCount; b++ {
		blocks = append(blocks, b)
	}
	return blocks
}

// SolidBlocks возвращает все типы блоков, кроме пустоты
func SolidBlocks() []BlockID {
	blocks := make([]BlockID, 0, blockCount-1)
	for _, b := range AllBlocks() {
		if b.IsSolid() {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// ParseBlockID разбирает имя типа блока из конфигурации тайлов
func ParseBlockID(name string) (BlockID, bool) {
	for _, b := range AllBlocks() {
		if b.String() == name {
			return b, true
		}
	}
	return BlockEmpty, false
}
