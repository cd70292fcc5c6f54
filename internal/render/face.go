package render

// Face определяет грань блока, видимую в фиксированной изометрической
// проекции. Видимых граней не больше трёх: верхняя и две обращённые к
// наблюдателю боковые. Две задние грани не рисуются никогда
type Face uint8

const (
	// FaceTop — верхняя грань, ромб 2:1
	FaceTop Face = iota
	// FaceLeft — левая боковая грань, обращена в сторону +Y
	FaceLeft
	// FaceRight — правая боковая грань, обращена в сторону +X
	FaceRight

	faceCount
)

// String возвращает имя грани, используемое в конфигурации тайлов
func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	default:
		return "unknown"
	}
}

// AllFaces возвращает все видимые грани
func AllFaces() []Face {
	return []Face{FaceTop, FaceLeft, FaceRight}
}

// ParseFace разбирает имя грани из конфигурации тайлов.
// Пустое имя считается верхней гранью
func ParseFace(name string) (Face, bool) {
	switch name {
	case "", "top":
		return FaceTop, true
	case "left":
		return FaceLeft, true
	case "right":
		return FaceRight, true
	default:
		return FaceTop, false
	}
}
