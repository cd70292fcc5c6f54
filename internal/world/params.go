package world

// Значения параметров генерации по умолчанию
const (
	DefaultLength        = 64
	DefaultFrequency     = 0.05
	DefaultLayerHeight   = 15
	DefaultMaxWaterLevel = 40
	DefaultMinSoilCutoff = 45
)

// GenParams описывает параметры генерации ландшафта.
// Запись неизменяемая: вместо цепочки сеттеров с частично валидными
// промежуточными состояниями параметры проверяются целиком методом
// Validate перед началом генерации
type GenParams struct {
	// Length — сторона квадратной площадки карты в блоках
	Length int `yaml:"length"`

	// Frequency — частота шума. Чем выше, тем мельче детали рельефа:
	// при 0.001 пологие склоны, при 0.05 — горные пики
	Frequency float64 `yaml:"frequency"`

	// LayerHeight — высота одного яруса рельефа в блоках. Максимальная
	// высота столбца равна Length * LayerHeight
	LayerHeight int `yaml:"layer_height"`

	// MaxWaterLevel — уровень воды. Столбцы ниже этого уровня
	// затапливаются водой
	MaxWaterLevel int `yaml:"max_water_level"`

	// MinSoilCutoff — граница почвы. Часть столбца выше этой высоты
	// становится скалой: высокий рельеф обнажает камень
	MinSoilCutoff int `yaml:"min_soil_cutoff"`

	// Seed — сид поля шума. Одинаковые параметры и сид всегда дают
	// побитово идентичную карту
	Seed int64 `yaml:"seed"`
}

// DefaultGenParams возвращает параметры генерации по умолчанию
func DefaultGenParams() GenParams {
	return GenParams{
		Length:        DefaultLength,
		Frequency:     DefaultFrequency,
		LayerHeight:   DefaultLayerHeight,
		MaxWaterLevel: DefaultMaxWaterLevel,
		MinSoilCutoff: DefaultMinSoilCutoff,
	}
}

// Validate проверяет параметры и возвращает ConfigError с именем
// первого неверного поля
func (p GenParams) Validate() error {
	if p.Length <= 0 {
		return NewConfigError("length", "должна быть положительной")
	}
	if p.Frequency <= 0 {
		return NewConfigError("frequency", "должна быть положительной")
	}
	if p.LayerHeight <= 0 {
		return NewConfigError("layer_height", "должна быть положительной")
	}
	if p.MaxWaterLevel < 0 {
		return NewConfigError("max_water_level", "не может быть отрицательным")
	}
	if p.MinSoilCutoff < 0 {
		return NewConfigError("min_soil_cutoff", "не может быть отрицательным")
	}
	return nil
}

// MaxTerrainHeight возвращает максимально возможную высоту столбца
func (p GenParams) MaxTerrainHeight() int {
	return p.Length * p.LayerHeight
}

// GridHeight возвращает высоту карты: в неё должны помещаться и самый
// высокий столбец, и уровень воды
func (p GenParams) GridHeight() int {
	if p.MaxWaterLevel > p.MaxTerrainHeight() {
		return p.MaxWaterLevel
	}
	return p.MaxTerrainHeight()
}
