package recognition

import (
	"cmp"
	"slices"

	"resistor-vision/internal/domain/entity"
)

// Sequence результат упорядочивания полос
type Sequence struct {
	Bands  []entity.BandDetection // слева направо
	Colors []entity.Color
	Mode   entity.BandMode // заполнен только при Enough
	Enough bool
}

// SequenceBands упорядочивает полосы слева направо по x-центру.
// Больше шести полос урезаются до шести самых уверенных, при меньше чем трёх результат частичный.
func SequenceBands(bands []entity.BandDetection) Sequence {
	ordered := slices.Clone(bands)

	if len(ordered) > entity.MaxBands {
		slices.SortStableFunc(ordered, func(a, b entity.BandDetection) int {
			return byConfidenceDesc(a.Detection, b.Detection)
		})
		ordered = ordered[:entity.MaxBands]
	}

	slices.SortStableFunc(ordered, func(a, b entity.BandDetection) int {
		return cmp.Compare(a.Box.CenterX, b.Box.CenterX)
	})

	colors := make([]entity.Color, len(ordered))
	for i, b := range ordered {
		colors[i] = b.Color
	}

	seq := Sequence{Bands: ordered, Colors: colors}
	if len(ordered) >= entity.MinBands {
		seq.Enough = true
		seq.Mode = entity.ModeForCount(len(ordered))
	}
	return seq
}
