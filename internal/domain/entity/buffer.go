package entity

import (
	"errors"
	"fmt"
)

// Channels число каналов в PixelBuffer (RGB).
const Channels = 3

// ErrInvalidBuffer возвращается при несовпадении длины данных и стороны буфера.
var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// PixelBuffer квадратный RGB-буфер со значениями в [0,1].
// Буфер не меняется после создания, каждая стадия обработки создаёт новый.
type PixelBuffer struct {
	side int
	data []float32
}

// NewPixelBuffer копирует данные в новый буфер стороны side.
func NewPixelBuffer(side int, data []float32) (*PixelBuffer, error) {
	if side <= 0 {
		return nil, fmt.Errorf("%w: side %d", ErrInvalidBuffer, side)
	}
	if len(data) != side*side*Channels {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrInvalidBuffer, len(data), side*side*Channels)
	}
	owned := make([]float32, len(data))
	copy(owned, data)
	return &PixelBuffer{side: side, data: owned}, nil
}

// NewPixelBufferFunc заполняет буфер значениями fill(x, y) без промежуточной копии.
func NewPixelBufferFunc(side int, fill func(x, y int) (r, g, b float32)) (*PixelBuffer, error) {
	if side <= 0 {
		return nil, fmt.Errorf("%w: side %d", ErrInvalidBuffer, side)
	}
	data := make([]float32, side*side*Channels)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			r, g, b := fill(x, y)
			idx := (y*side + x) * Channels
			data[idx] = r
			data[idx+1] = g
			data[idx+2] = b
		}
	}
	return &PixelBuffer{side: side, data: data}, nil
}

// Side возвращает сторону буфера в пикселях.
func (p *PixelBuffer) Side() int {
	return p.side
}

// Len возвращает число значений в буфере.
func (p *PixelBuffer) Len() int {
	return len(p.data)
}

// At возвращает каналы пикселя (x, y). Вне буфера возвращает нули.
func (p *PixelBuffer) At(x, y int) (r, g, b float32) {
	if x < 0 || y < 0 || x >= p.side || y >= p.side {
		return 0, 0, 0
	}
	idx := (y*p.side + x) * Channels
	return p.data[idx], p.data[idx+1], p.data[idx+2]
}

// Float32s возвращает копию данных в порядке HWC.
func (p *PixelBuffer) Float32s() []float32 {
	out := make([]float32, len(p.data))
	copy(out, p.data)
	return out
}
