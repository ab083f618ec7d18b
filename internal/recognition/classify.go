package recognition

import (
	"gonum.org/v1/gonum/floats"

	"resistor-vision/internal/domain/entity"
)

// classColors порядок классов второй модели.
var classColors = [NumColorClasses]entity.Color{
	entity.Black, entity.Blue, entity.Brown, entity.Gold, entity.Green, entity.Gray,
	entity.Orange, entity.Violet, entity.Red, entity.Silver, entity.White, entity.Yellow,
}

// FallbackColor подставляется для номера класса вне таблицы.
const FallbackColor = entity.Brown

// ColorForClass переводит номер класса модели в цвет.
// Для номера вне таблицы возвращает FallbackColor и false.
func ColorForClass(classID int) (entity.Color, bool) {
	if classID < 0 || classID >= len(classColors) {
		return FallbackColor, false
	}
	return classColors[classID], true
}

// ClassifyRGB ищет ближайший эталонный цвет среди тех, в радиус которых попадает образец.
// При равных расстояниях побеждает цвет, стоящий раньше в таблице.
func ClassifyRGB(rgb entity.RGB) (entity.Color, bool) {
	sample := []float64{rgb.R, rgb.G, rgb.B}

	var (
		best    entity.Color
		found   bool
		minDist float64
	)
	for _, c := range entity.AllColors() {
		code := c.Code()
		centroid := []float64{code.Centroid.R, code.Centroid.G, code.Centroid.B}
		dist := floats.Distance(sample, centroid, 2)
		if dist >= code.Radius {
			continue
		}
		if !found || dist < minDist {
			best, minDist, found = c, dist, true
		}
	}
	return best, found
}

// ClassifyBands присваивает цвета обнаруженным полосам по номерам классов.
func ClassifyBands(detections []entity.Detection) []entity.BandDetection {
	bands := make([]entity.BandDetection, 0, len(detections))
	for _, d := range detections {
		color, ok := ColorForClass(d.ClassID)
		bands = append(bands, entity.BandDetection{
			Detection:     d,
			Color:         color,
			FallbackClass: !ok,
		})
	}
	return bands
}
