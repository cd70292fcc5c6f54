package render

import (
	"fmt"

	"github.com/annel0/cubeglobe/internal/world"
)

// RenderError возвращается, когда у видимого блока нет тайла для
// видимой грани. Рендер прерывается целиком: отсутствующий тайл —
// ошибка конфигурации ассетов, молча пропускать его нельзя
type RenderError struct {
	Block world.BlockID
	Face  Face
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("отсутствует тайл для блока %q (грань %q)", e.Block, e.Face)
}

// CatalogError описывает неполную или противоречивую конфигурацию
// каталога тайлов, обнаруженную при его сборке
type CatalogError struct {
	Block  world.BlockID
	Face   Face
	Reason string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("ошибка каталога тайлов для блока %q (грань %q): %s", e.Block, e.Face, e.Reason)
}
