package world

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds возвращается при обращении к координате вне границ карты.
// Это ошибка программиста, а не пользовательских данных
var ErrOutOfBounds = errors.New("координата вне границ карты")

// ConfigError описывает неверный параметр генерации.
// Ошибка обнаруживается до начала генерации: частично заполненная
// карта никогда не возвращается
type ConfigError struct {
	Field  string // Имя параметра
	Reason string // Причина отказа
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("неверный параметр генерации %q: %s", e.Field, e.Reason)
}

// NewConfigError создаёт ошибку конфигурации для указанного поля
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}
