package world

import "testing"

func TestBlockNamesRoundTrip(t *testing.T) {
	for _, b := range AllBlocks() {
		parsed, ok := ParseBlockID(b.String())
		if !ok {
			t.Errorf("Имя %q не разбирается обратно", b.String())
			continue
		}
		if parsed != b {
			t.Errorf("Ожидался %d после разбора %q, получен %d", b, b.String(), parsed)
		}
	}

	if _, ok := ParseBlockID("lava"); ok {
		t.Error("Неизвестное имя не должно разбираться")
	}
}

func TestSolidBlocks(t *testing.T) {
	for _, b := range SolidBlocks() {
		if !b.IsSolid() {
			t.Errorf("Блок %s в списке непустых, но IsSolid() == false", b)
		}
	}
	if BlockEmpty.IsSolid() {
		t.Error("Пустота не должна считаться заполненным блоком")
	}
	if !BlockGrass.IsSurfaceCover() || !BlockSand.IsSurfaceCover() {
		t.Error("Трава и песок должны быть поверхностным покрытием")
	}
	if BlockRock.IsSurfaceCover() {
		t.Error("Скала не является поверхностным покрытием")
	}
}
