package vec

// Vec3 представляет координаты блока в объёме карты.
// Оси X и Y лежат на площадке, Z направлена вверх, отсчёт с нуля
type Vec3 struct {
	X int
	Y int
	Z int
}

// ToVec2 преобразует Vec3 в Vec2, игнорируя координату Z
func (v Vec3) ToVec2() Vec2 {
	return Vec2{
		X: v.X,
		Y: v.Y,
	}
}

// FromVec2 создает Vec3 из Vec2, используя заданную Z координату
func FromVec2(v Vec2, z int) Vec3 {
	return Vec3{
		X: v.X,
		Y: v.Y,
		Z: z,
	}
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}
