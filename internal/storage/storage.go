package storage

import (
	"errors"
	"time"

	"github.com/annel0/cubeglobe/internal/world"
)

// ErrMapNotFound возвращается при запросе несуществующей карты
var ErrMapNotFound = errors.New("карта не найдена")

// MapRecord содержит метаданные сохранённой карты
type MapRecord struct {
	ID        string          `json:"id"`         // Идентификатор карты
	Params    world.GenParams `json:"params"`     // Параметры генерации
	CreatedAt time.Time       `json:"created_at"` // Время создания
}

// MapStorage определяет хранилище сгенерированных карт: воксельные
// данные, отрендеренное изображение и метаданные под одним идентификатором
type MapStorage interface {
	// SaveMap сохраняет карту целиком: сетку, изображение и метаданные
	SaveMap(record MapRecord, grid *world.Grid, image []byte) error

	// LoadRecord возвращает метаданные карты
	LoadRecord(id string) (MapRecord, error)

	// LoadGrid возвращает воксельную сетку карты
	LoadGrid(id string) (*world.Grid, error)

	// LoadImage возвращает закодированное изображение карты
	LoadImage(id string) ([]byte, error)

	// ListMaps возвращает метаданные всех сохранённых карт
	ListMaps() ([]MapRecord, error)

	// Close закрывает хранилище
	Close() error
}
