package recognition

import (
	"math"

	"resistor-vision/internal/domain/entity"
)

// DecodeTensor разбирает плоский выход модели вида [4+numClasses][numProposals]
// (сначала все x-центры, затем все y-центры и т.д.) в список кандидатов.
//
// При numClasses == 0 пятый канал содержит уверенность, класса нет.
// Иначе класс определяется argmax по каналам классов, уверенностью служит максимум.
// Возвращаются только кандидаты с уверенностью строго выше threshold.
// Чтение за пределами массива и NaN дают 0, поэтому короткий тензор не вызывает ошибку.
func DecodeTensor(output []float32, numProposals, numClasses int, threshold float64) []entity.Detection {
	if numProposals <= 0 || numClasses < 0 {
		return nil
	}

	at := func(idx int) float64 {
		if idx < 0 || idx >= len(output) {
			return 0
		}
		v := float64(output[idx])
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}

	var detections []entity.Detection
	for i := 0; i < numProposals; i++ {
		var (
			confidence float64
			classID    int
		)
		if numClasses == 0 {
			confidence = at(i + 4*numProposals)
		} else {
			for c := 0; c < numClasses; c++ {
				conf := at(i + (4+c)*numProposals)
				if conf > confidence {
					confidence = conf
					classID = c
				}
			}
		}

		if confidence <= threshold {
			continue
		}

		detections = append(detections, entity.Detection{
			Box: entity.NormalizedBox{
				CenterX: at(i),
				CenterY: at(i + numProposals),
				Width:   at(i + 2*numProposals),
				Height:  at(i + 3*numProposals),
			},
			Confidence: confidence,
			ClassID:    classID,
			HasClass:   numClasses > 0,
		})
	}
	return detections
}
