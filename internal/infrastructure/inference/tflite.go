//go:build tflite
// +build tflite

package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mattn/go-tflite"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
)

// TFLiteRunner исполняет модель TensorFlow Lite.
// Интерпретатор не потокобезопасен, вызовы сериализуются.
type TFLiteRunner struct {
	name        string
	mu          sync.Mutex
	model       *tflite.Model
	options     *tflite.InterpreterOptions
	interpreter *tflite.Interpreter
}

// NewTFLiteRunner загружает модель из path и готовит интерпретатор.
func NewTFLiteRunner(name, path string, threads int) (*TFLiteRunner, error) {
	model := tflite.NewModelFromFile(path)
	if model == nil {
		return nil, fmt.Errorf("load %s model from %s: %w", name, path, ErrModelLoad)
	}

	options := tflite.NewInterpreterOptions()
	options.SetNumThread(threads)

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("create %s interpreter: %w", name, ErrModelLoad)
	}
	if status := interpreter.AllocateTensors(); status != tflite.OK {
		interpreter.Delete()
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("allocate %s tensors: status %v", name, status)
	}

	return &TFLiteRunner{
		name:        name,
		model:       model,
		options:     options,
		interpreter: interpreter,
	}, nil
}

// Run заполняет входной тензор буфером и возвращает копию выходного.
func (r *TFLiteRunner) Run(ctx context.Context, input *entity.PixelBuffer) ([]float32, error) {
	if input == nil {
		return nil, entity.ErrInvalidBuffer
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	in := r.interpreter.GetInputTensor(0)
	if in == nil || in.Type() != tflite.Float32 {
		return nil, fmt.Errorf("%s: input tensor is not float32", r.name)
	}
	dst := in.Float32s()
	if len(dst) != input.Len() {
		return nil, fmt.Errorf("%s: %w: input tensor holds %d values, buffer has %d",
			r.name, ErrShapeMismatch, len(dst), input.Len())
	}
	copy(dst, input.Float32s())

	if status := r.interpreter.Invoke(); status != tflite.OK {
		return nil, fmt.Errorf("%s: invoke failed: status %v", r.name, status)
	}

	out := r.interpreter.GetOutputTensor(0)
	if out == nil {
		return nil, errors.New(r.name + ": missing output tensor")
	}
	return append([]float32(nil), out.Float32s()...), nil
}

// Close освобождает интерпретатор и модель.
func (r *TFLiteRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.interpreter.Delete()
	r.options.Delete()
	r.model.Delete()
	return nil
}

var _ port.ModelRunner = (*TFLiteRunner)(nil)
