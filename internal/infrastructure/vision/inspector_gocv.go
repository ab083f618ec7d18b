//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"gocv.io/x/gocv"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
	"resistor-vision/internal/recognition"
)

// CheckQuality отклоняет маленькие, размытые, пере- или недоэкспонированные снимки и снимки с бликами.
func (d *Inspector) CheckQuality(ctx context.Context, photo []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mat, err := decodeToMat(photo)
	if err != nil {
		return err
	}
	defer mat.Close()

	return d.checkImageQuality(mat)
}

// Highlight обводит резистор и полосы (цветом полосы) на входном буфере и кодирует в JPEG.
func (d *Inspector) Highlight(input *entity.PixelBuffer, resistor entity.Detection, bands []entity.BandDetection) ([]byte, error) {
	if input == nil {
		return nil, entity.ErrInvalidBuffer
	}
	side := input.Side()

	mat, err := gocv.ImageToMatRGB(bufferToNRGBA(input))
	if err != nil {
		return nil, fmt.Errorf("convert buffer: %w", err)
	}
	defer mat.Close()

	body := recognition.BoxToPixels(resistor.Box, side)
	gocv.Rectangle(&mat, image.Rect(body.X1, body.Y1, body.X2, body.Y2), hexColor("#00FF00"), d.LineThickness)

	for _, band := range bands {
		box := recognition.ProjectBox(resistor.Box, side, band.Box)
		rect := recognition.BoxToPixels(box, side)
		if rect.Empty() {
			continue
		}
		gocv.Rectangle(&mat, image.Rect(rect.X1, rect.Y1, rect.X2, rect.Y2), hexColor(band.Color.Code().Hex), d.LineThickness)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

func (d *Inspector) checkImageQuality(mat gocv.Mat) error {
	if mat.Cols() < d.MinImageSide || mat.Rows() < d.MinImageSide {
		return fmt.Errorf("%w: image is too small (%dx%d)", port.ErrPoorImageQuality, mat.Cols(), mat.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 80, 160)
	if ratio := ratioOfMask(edges); ratio < d.MinSharpnessEdgeRatio {
		return fmt.Errorf("%w: image is blurry (edge_ratio=%.4f)", port.ErrPoorImageQuality, ratio)
	}

	bright := gocv.NewMat()
	defer bright.Close()
	gocv.Threshold(gray, &bright, 250, 255, gocv.ThresholdBinary)
	if ratio := ratioOfMask(bright); ratio > d.MaxOverexposedRatio {
		return fmt.Errorf("%w: overexposed image (ratio=%.4f)", port.ErrPoorImageQuality, ratio)
	}

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(gray, &dark, 20, 255, gocv.ThresholdBinaryInv)
	if ratio := ratioOfMask(dark); ratio > d.MaxUnderexposedRatio {
		return fmt.Errorf("%w: underexposed image (ratio=%.4f)", port.ErrPoorImageQuality, ratio)
	}

	// Блики: низкая насыщенность при высокой яркости
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) < 3 {
		return errors.New("invalid hsv channels")
	}

	lowSat := gocv.NewMat()
	defer lowSat.Close()
	gocv.Threshold(channels[1], &lowSat, 40, 255, gocv.ThresholdBinaryInv)

	highVal := gocv.NewMat()
	defer highVal.Close()
	gocv.Threshold(channels[2], &highVal, 245, 255, gocv.ThresholdBinary)

	glare := gocv.NewMat()
	defer glare.Close()
	gocv.BitwiseAnd(lowSat, highVal, &glare)
	if ratio := ratioOfMask(glare); ratio > d.MaxGlareRatio {
		return fmt.Errorf("%w: too much glare (ratio=%.4f)", port.ErrPoorImageQuality, ratio)
	}

	return nil
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}
