package recognition

import (
	"cmp"
	"math"
	"slices"

	"resistor-vision/internal/domain/entity"
)

// IoU отношение площади пересечения к площади объединения двух рамок.
// Для непересекающихся и вырожденных рамок равно 0.
func IoU(a, b entity.NormalizedBox) float64 {
	x1 := math.Max(a.Left(), b.Left())
	y1 := math.Max(a.Top(), b.Top())
	x2 := math.Min(a.Left()+a.Width, b.Left()+b.Width)
	y2 := math.Min(a.Top()+a.Height, b.Top()+b.Height)

	if x2 <= x1 || y2 <= y1 {
		return 0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}

// byConfidenceDesc порядок по убыванию уверенности.
func byConfidenceDesc(a, b entity.Detection) int {
	return cmp.Compare(b.Confidence, a.Confidence)
}

// NonMaxSuppression оставляет из каждой группы пересекающихся рамок самую уверенную.
// Результат упорядочен по убыванию уверенности, входной срез не меняется.
func NonMaxSuppression(detections []entity.Detection, iouThreshold float64) []entity.Detection {
	if len(detections) == 0 {
		return nil
	}

	remaining := slices.Clone(detections)
	slices.SortStableFunc(remaining, byConfidenceDesc)

	result := make([]entity.Detection, 0, len(remaining))
	for len(remaining) > 0 {
		best := remaining[0]
		result = append(result, best)

		kept := remaining[:0]
		for _, d := range remaining[1:] {
			if IoU(best.Box, d.Box) <= iouThreshold {
				kept = append(kept, d)
			}
		}
		remaining = kept
	}
	return result
}
