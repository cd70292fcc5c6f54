package storage

import (
	"sort"
	"sync"

	"github.com/annel0/cubeglobe/internal/world"
)

// MemoryStorage хранит карты в памяти. Используется в тестах и при
// запуске без каталога данных
type MemoryStorage struct {
	mutex   sync.RWMutex
	records map[string]MapRecord
	grids   map[string]*world.Grid
	images  map[string][]byte
}

// NewMemoryStorage создаёт пустое хранилище в памяти
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]MapRecord),
		grids:   make(map[string]*world.Grid),
		images:  make(map[string][]byte),
	}
}

// SaveMap сохраняет карту целиком
func (ms *MemoryStorage) SaveMap(record MapRecord, grid *world.Grid, image []byte) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	ms.records[record.ID] = record
	ms.grids[record.ID] = grid.Clone()
	img := make([]byte, len(image))
	copy(img, image)
	ms.images[record.ID] = img
	return nil
}

// LoadRecord возвращает метаданные карты
func (ms *MemoryStorage) LoadRecord(id string) (MapRecord, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	record, ok := ms.records[id]
	if !ok {
		return MapRecord{}, ErrMapNotFound
	}
	return record, nil
}

// LoadGrid возвращает воксельную сетку карты
func (ms *MemoryStorage) LoadGrid(id string) (*world.Grid, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	grid, ok := ms.grids[id]
	if !ok {
		return nil, ErrMapNotFound
	}
	return grid.Clone(), nil
}

// LoadImage возвращает закодированное изображение карты
func (ms *MemoryStorage) LoadImage(id string) ([]byte, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	img, ok := ms.images[id]
	if !ok {
		return nil, ErrMapNotFound
	}
	out := make([]byte, len(img))
	copy(out, img)
	return out, nil
}

// ListMaps возвращает метаданные всех карт, отсортированные по времени
// создания
func (ms *MemoryStorage) ListMaps() ([]MapRecord, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	records := make([]MapRecord, 0, len(ms.records))
	for _, record := range ms.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Close ничего не делает для хранилища в памяти
func (ms *MemoryStorage) Close() error {
	return nil
}
