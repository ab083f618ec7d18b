package entity

// NormalizedBox рамка в координатах [0,1] относительно стороны квадратного буфера
type NormalizedBox struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// Left возвращает левую границу рамки.
func (b NormalizedBox) Left() float64 {
	return b.CenterX - b.Width/2
}

// Top возвращает верхнюю границу рамки.
func (b NormalizedBox) Top() float64 {
	return b.CenterY - b.Height/2
}

// Area возвращает площадь рамки (0 для вырожденной).
func (b NormalizedBox) Area() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// Detection кандидат, выданный моделью после порога уверенности
type Detection struct {
	Box        NormalizedBox
	Confidence float64
	ClassID    int  // номер класса с максимальной уверенностью
	HasClass   bool // false для модели локализации без классов
}

// BandDetection обнаруженная полоса с распознанным цветом
type BandDetection struct {
	Detection
	Color         Color
	FallbackClass bool // номер класса вне таблицы, подставлен цвет по умолчанию
}
