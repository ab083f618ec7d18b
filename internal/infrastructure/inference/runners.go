package inference

import (
	"errors"
	"fmt"
	"net/url"

	"resistor-vision/internal/domain/port"
)

// Имена моделей для сервиса вывода
const (
	LocatorModel    = "locator"
	ClassifierModel = "classifier"
)

// Settings выбор источника моделей
type Settings struct {
	URL            string // если задан, используется HTTP-сервис
	LocatorPath    string
	ClassifierPath string
	Threads        int
}

// Runners пара моделей распознавания
type Runners struct {
	Locator    port.ModelRunner
	Classifier port.ModelRunner
	Remote     *HTTPRunner // для проверки доступности; nil для локальных моделей
	closers    []func() error
}

// Close освобождает локальные модели.
func (r *Runners) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewRunners создаёт HTTP-клиентов к сервису или загружает локальные модели TFLite.
func NewRunners(s Settings) (*Runners, error) {
	if s.URL != "" {
		locator, err := NewHTTPRunner(mustJoin(s.URL, LocatorModel), LocatorModel, nil)
		if err != nil {
			return nil, err
		}
		classifier, err := NewHTTPRunner(mustJoin(s.URL, ClassifierModel), ClassifierModel, nil)
		if err != nil {
			return nil, err
		}
		remote, err := NewHTTPRunner(s.URL, "", nil)
		if err != nil {
			return nil, err
		}
		return &Runners{Locator: locator, Classifier: classifier, Remote: remote}, nil
	}

	if s.LocatorPath == "" || s.ClassifierPath == "" {
		return nil, errors.New("model paths are required when inference url is not set")
	}
	locator, err := NewTFLiteRunner(LocatorModel, s.LocatorPath, s.Threads)
	if err != nil {
		return nil, err
	}
	classifier, err := NewTFLiteRunner(ClassifierModel, s.ClassifierPath, s.Threads)
	if err != nil {
		_ = locator.Close()
		return nil, err
	}
	return &Runners{
		Locator:    locator,
		Classifier: classifier,
		closers:    []func() error{locator.Close, classifier.Close},
	}, nil
}

// mustJoin добавляет имя модели к адресу; некорректный адрес отвергнет NewHTTPRunner.
func mustJoin(base, elem string) string {
	joined, err := url.JoinPath(base, elem)
	if err != nil {
		return base
	}
	return joined
}

func (s Settings) String() string {
	if s.URL != "" {
		return fmt.Sprintf("remote %s", s.URL)
	}
	return fmt.Sprintf("tflite %s, %s (%d threads)", s.LocatorPath, s.ClassifierPath, s.Threads)
}
