// Package recognition распознаёт полосы резистора по выходам двух моделей детекции.
package recognition

// Пороги подобраны вручную и не выведены из данных; их можно настраивать.
const (
	DefaultConfidenceThreshold = 0.3
	DefaultIoUThreshold        = 0.3
	DefaultInputSide           = 640
	DefaultNumProposals        = 8400
	NumColorClasses            = 12
)

// Config параметры двухстадийного распознавания
type Config struct {
	InputSide           int     // сторона входного буфера обеих моделей
	NumProposals        int     // число предложений в выходе модели; 0: вывести из длины тензора
	ConfidenceThreshold float64 // порог приёма предложения
	IoUThreshold        float64 // порог подавления пересечений
}

// DefaultConfig возвращает параметры по умолчанию.
func DefaultConfig() Config {
	return Config{
		InputSide:           DefaultInputSide,
		NumProposals:        DefaultNumProposals,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		IoUThreshold:        DefaultIoUThreshold,
	}
}

// Validate возвращает значения по умолчанию вместо недопустимых.
func (c *Config) Validate() {
	if c.InputSide <= 0 {
		c.InputSide = DefaultInputSide
	}
	if c.NumProposals < 0 {
		c.NumProposals = DefaultNumProposals
	}
	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold >= 1 {
		c.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if c.IoUThreshold <= 0 || c.IoUThreshold >= 1 {
		c.IoUThreshold = DefaultIoUThreshold
	}
}

// proposals возвращает число предложений для тензора длины n.
// Модель локализации выдаёт 5 каналов (рамка и уверенность), модель цветов 4+numClasses.
func (c Config) proposals(n, numClasses int) int {
	if c.NumProposals > 0 {
		return c.NumProposals
	}
	channels := 4 + numClasses
	if numClasses == 0 {
		channels = 5
	}
	return n / channels
}
