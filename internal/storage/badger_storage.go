package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/cubeglobe/internal/world"
)

// Префиксы ключей в BadgerDB
const (
	keyPrefixMeta  = "meta:"
	keyPrefixGrid  = "grid:"
	keyPrefixImage = "image:"
)

// BadgerStorage хранит карты в BadgerDB. Воксельные сетки сжимаются
// zstd: плотный массив блоков с длинными однородными участками
// сжимается на порядок
type BadgerStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewBadgerStorage открывает хранилище карт в указанном каталоге
func NewBadgerStorage(dataPath string) (*BadgerStorage, error) {
	dbPath := filepath.Join(dataPath, "maps")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd-кодер: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd-декодер: %w", err)
	}

	return &BadgerStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Close закрывает хранилище данных
func (bs *BadgerStorage) Close() error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if !bs.isReady {
		return nil
	}
	bs.isReady = false
	bs.encoder.Close()
	bs.decoder.Close()
	return bs.db.Close()
}

// SaveMap сохраняет карту: метаданные в JSON, сетку в сжатом бинарном
// виде, изображение как есть. Запись атомарная — либо сохраняется всё,
// либо ничего
func (bs *BadgerStorage) SaveMap(record MapRecord, grid *world.Grid, image []byte) error {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	meta, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}

	raw, err := grid.MarshalBinary()
	if err != nil {
		return fmt.Errorf("ошибка сериализации сетки: %w", err)
	}
	compressed := bs.encoder.EncodeAll(raw, nil)

	err = bs.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyPrefixMeta+record.ID), meta); err != nil {
			return err
		}
		if err := txn.Set([]byte(keyPrefixGrid+record.ID), compressed); err != nil {
			return err
		}
		return txn.Set([]byte(keyPrefixImage+record.ID), image)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}

func (bs *BadgerStorage) get(key string) ([]byte, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var out []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrMapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}
	return out, nil
}

// LoadRecord возвращает метаданные карты
func (bs *BadgerStorage) LoadRecord(id string) (MapRecord, error) {
	data, err := bs.get(keyPrefixMeta + id)
	if err != nil {
		return MapRecord{}, err
	}

	var record MapRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return MapRecord{}, fmt.Errorf("ошибка разбора метаданных: %w", err)
	}
	return record, nil
}

// LoadGrid возвращает воксельную сетку карты
func (bs *BadgerStorage) LoadGrid(id string) (*world.Grid, error) {
	compressed, err := bs.get(keyPrefixGrid + id)
	if err != nil {
		return nil, err
	}

	raw, err := bs.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки сетки: %w", err)
	}

	var grid world.Grid
	if err := grid.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("ошибка восстановления сетки: %w", err)
	}
	return &grid, nil
}

// LoadImage возвращает закодированное изображение карты
func (bs *BadgerStorage) LoadImage(id string) ([]byte, error) {
	return bs.get(keyPrefixImage + id)
}

// ListMaps возвращает метаданные всех карт, отсортированные по времени
// создания
func (bs *BadgerStorage) ListMaps() ([]MapRecord, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	records := make([]MapRecord, 0)
	err := bs.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefixMeta)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record MapRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return fmt.Errorf("ошибка разбора метаданных %s: %w",
					strings.TrimPrefix(string(it.Item().Key()), keyPrefixMeta), err)
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}
