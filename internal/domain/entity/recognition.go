package entity

// FailureReason ключ причины неудачного распознавания (переводится на стороне UI)
type FailureReason string

const (
	ReasonNone              FailureReason = ""
	ReasonResistorNotFound  FailureReason = "vision.resistorNotDetected"
	ReasonNoBandsDetected   FailureReason = "vision.noBandsDetected"
	ReasonNotEnoughBands    FailureReason = "vision.needMoreBands"
	ReasonProcessingError   FailureReason = "vision.processingError"
	ReasonPoorImageQuality  FailureReason = "vision.poorImageQuality"
	ReasonUnrecognizedColor FailureReason = "vision.unrecognizedColor"
)

// Recognition итог распознавания фотографии.
// При неудаче Colors содержит частичную последовательность (если полосы были найдены).
type Recognition struct {
	Success    bool
	Reason     FailureReason
	Colors     []Color
	Mode       BandMode
	Bands      []BandDetection // полосы слева направо, координаты в пространстве кропа
	Resistor   *Detection      // найденный резистор, координаты входного буфера
	BandCount  int
	RequestID  string
	ErrMessage string // текст ошибки инфраструктуры для ReasonProcessingError
}

// NotFound сообщает, что резистор не найден.
func (r *Recognition) NotFound() bool {
	return !r.Success && r.Reason == ReasonResistorNotFound
}

// InsufficientBands сообщает, что найдено меньше трёх полос.
func (r *Recognition) InsufficientBands() bool {
	return !r.Success && (r.Reason == ReasonNotEnoughBands || r.Reason == ReasonNoBandsDetected)
}
