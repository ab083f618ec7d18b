package recognition

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"resistor-vision/internal/domain/entity"
)

type fakeRunner struct {
	output []float32
	err    error
	calls  int
	input  *entity.PixelBuffer
}

func (f *fakeRunner) Run(_ context.Context, input *entity.PixelBuffer) ([]float32, error) {
	f.calls++
	f.input = input
	return f.output, f.err
}

// bandProposal предложение модели цветов с одним активным классом.
func bandProposal(cx float32, color entity.Color, conf float32) []float32 {
	p := make([]float32, 4+NumColorClasses)
	p[0], p[1], p[2], p[3] = cx, 0.5, 0.05, 0.5
	for i, c := range classColors {
		if c == color {
			p[4+i] = conf
		}
	}
	return p
}

func testInput(t *testing.T) *entity.PixelBuffer {
	t.Helper()
	buf, err := entity.NewPixelBufferFunc(16, func(x, y int) (float32, float32, float32) {
		return 0.5, 0.5, 0.5
	})
	require.NoError(t, err)
	return buf
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.InputSide = 16
	cfg.NumProposals = 0
	return cfg
}

func resistorTensor() []float32 {
	return tensor([][]float32{
		{0.5, 0.5, 0.6, 0.3, 0.95},
		{0.52, 0.5, 0.6, 0.3, 0.6},
	})
}

func TestRecognizer_FourBands(t *testing.T) {
	locator := &fakeRunner{output: resistorTensor()}
	classifier := &fakeRunner{output: tensor([][]float32{
		bandProposal(0.8, entity.Gold, 0.7),
		bandProposal(0.2, entity.Yellow, 0.9),
		bandProposal(0.6, entity.Red, 0.8),
		bandProposal(0.4, entity.Violet, 0.85),
		bandProposal(0.41, entity.Blue, 0.5), // перекрывается с фиолетовой
	})}

	r := NewRecognizer(locator, classifier, testConfig(), nil)
	got, err := r.Recognize(context.Background(), testInput(t))
	require.NoError(t, err)

	require.True(t, got.Success)
	require.Equal(t, entity.ReasonNone, got.Reason)
	require.Equal(t, entity.FourBands, got.Mode)
	require.Equal(t, 4, got.BandCount)
	require.Equal(t, []entity.Color{entity.Yellow, entity.Violet, entity.Red, entity.Gold}, got.Colors)
	require.NotEmpty(t, got.RequestID)
	require.NotNil(t, got.Resistor)
	require.InDelta(t, 0.95, got.Resistor.Confidence, 1e-6)

	require.Equal(t, 1, classifier.calls)
	require.Equal(t, 16, classifier.input.Side())
}

func TestRecognizer_ResistorNotFound(t *testing.T) {
	locator := &fakeRunner{output: tensor([][]float32{{0.5, 0.5, 0.2, 0.2, 0.1}})}
	classifier := &fakeRunner{}

	got, err := NewRecognizer(locator, classifier, testConfig(), nil).Recognize(context.Background(), testInput(t))
	require.NoError(t, err)
	require.False(t, got.Success)
	require.True(t, got.NotFound())
	require.Nil(t, got.Resistor)
	require.Zero(t, classifier.calls)
}

func TestRecognizer_TwoBandsInsufficient(t *testing.T) {
	locator := &fakeRunner{output: resistorTensor()}
	classifier := &fakeRunner{output: tensor([][]float32{
		bandProposal(0.7, entity.Black, 0.9),
		bandProposal(0.3, entity.Brown, 0.9),
	})}

	got, err := NewRecognizer(locator, classifier, testConfig(), nil).Recognize(context.Background(), testInput(t))
	require.NoError(t, err)
	require.False(t, got.Success)
	require.True(t, got.InsufficientBands())
	require.Equal(t, entity.ReasonNotEnoughBands, got.Reason)
	require.Equal(t, 2, got.BandCount)
	require.Equal(t, []entity.Color{entity.Brown, entity.Black}, got.Colors)
}

func TestRecognizer_NoBands(t *testing.T) {
	locator := &fakeRunner{output: resistorTensor()}
	classifier := &fakeRunner{output: tensor([][]float32{bandProposal(0.5, entity.Red, 0.1)})}

	got, err := NewRecognizer(locator, classifier, testConfig(), nil).Recognize(context.Background(), testInput(t))
	require.NoError(t, err)
	require.Equal(t, entity.ReasonNoBandsDetected, got.Reason)
	require.True(t, got.InsufficientBands())
	require.Zero(t, got.BandCount)
}

func TestRecognizer_ModelErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewRecognizer(&fakeRunner{err: boom}, &fakeRunner{}, testConfig(), nil).
		Recognize(context.Background(), testInput(t))
	require.ErrorIs(t, err, boom)

	_, err = NewRecognizer(&fakeRunner{output: resistorTensor()}, &fakeRunner{err: boom}, testConfig(), nil).
		Recognize(context.Background(), testInput(t))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "color model")
}

func TestRecognizer_DegenerateCropStillRuns(t *testing.T) {
	locator := &fakeRunner{output: tensor([][]float32{{0.5, 0.5, 0, 0, 0.9}})}
	classifier := &fakeRunner{output: tensor([][]float32{bandProposal(0.5, entity.Red, 0.1)})}

	got, err := NewRecognizer(locator, classifier, testConfig(), nil).Recognize(context.Background(), testInput(t))
	require.NoError(t, err)
	require.Equal(t, entity.ReasonNoBandsDetected, got.Reason)
	require.Equal(t, 1, classifier.calls)
	require.Zero(t, classifier.input.Float32s()[0])
}

func TestRecognizer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	classifier := &fakeRunner{}
	_, err := NewRecognizer(&fakeRunner{output: resistorTensor()}, classifier, testConfig(), nil).Recognize(ctx, testInput(t))
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, classifier.calls)
}

func TestRecognizer_NilInput(t *testing.T) {
	_, err := NewRecognizer(&fakeRunner{}, &fakeRunner{}, testConfig(), nil).Recognize(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrInvalidBuffer)
}

func TestRecognizer_LocatorProposalsInferredFromLength(t *testing.T) {
	rows := make([][]float32, 8)
	for i := range rows {
		rows[i] = []float32{0.5, 0.5, 0.1, 0.1, 0}
	}
	rows[3] = []float32{0.5, 0.5, 0.6, 0.3, 0.9}
	locator := &fakeRunner{output: tensor(rows)}
	classifier := &fakeRunner{output: tensor([][]float32{
		bandProposal(0.2, entity.Brown, 0.9),
		bandProposal(0.4, entity.Black, 0.9),
		bandProposal(0.6, entity.Red, 0.9),
	})}

	got, err := NewRecognizer(locator, classifier, testConfig(), nil).Recognize(context.Background(), testInput(t))
	require.NoError(t, err)
	require.NotEqual(t, entity.ReasonResistorNotFound, got.Reason)
	require.NotNil(t, got.Resistor)
	require.InDelta(t, 0.9, got.Resistor.Confidence, 1e-6)
	require.Equal(t, 1, classifier.calls)
}
