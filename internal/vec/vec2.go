package vec

// Vec2 представляет 2D координаты столбца на площадке карты
type Vec2 struct {
	X, Y int
}
