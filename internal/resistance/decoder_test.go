package resistance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"resistor-vision/internal/domain/entity"
)

func TestDecode_FourBands(t *testing.T) {
	reading, err := Decode(entity.FourBands, []entity.Color{entity.Brown, entity.Black, entity.Red, entity.Gold})
	require.NoError(t, err)
	require.Equal(t, 1000.0, reading.Ohms)
	require.NotNil(t, reading.Tolerance)
	require.Equal(t, 5.0, *reading.Tolerance)
	require.Nil(t, reading.TempCoeff)
	require.Equal(t, "1kΩ ±5%", Format(reading))
}

func TestDecode_FiveBands(t *testing.T) {
	reading, err := Decode(entity.FiveBands, []entity.Color{entity.Brown, entity.Black, entity.Red, entity.Orange, entity.Brown})
	require.NoError(t, err)
	require.Equal(t, 102000.0, reading.Ohms)
	require.Equal(t, "102kΩ", FormatOhms(reading.Ohms))
	require.Equal(t, 1.0, *reading.Tolerance)
}

func TestDecode_ThreeBandsHasNoTolerance(t *testing.T) {
	reading, err := Decode(entity.ThreeBands, []entity.Color{entity.Yellow, entity.Violet, entity.Orange, entity.Gold})
	require.NoError(t, err)
	require.Equal(t, 47000.0, reading.Ohms)
	require.False(t, reading.HasTolerance())
	require.False(t, reading.HasTempCoeff())
	require.Equal(t, "47kΩ", Format(reading))
}

func TestDecode_SixBands(t *testing.T) {
	colors := []entity.Color{entity.Red, entity.Red, entity.Black, entity.Black, entity.Brown, entity.Red}
	reading, err := Decode(entity.SixBands, colors)
	require.NoError(t, err)
	require.Equal(t, 220.0, reading.Ohms)
	require.Equal(t, 1.0, *reading.Tolerance)
	require.Equal(t, 50.0, *reading.TempCoeff)
	require.Equal(t, "220Ω ±1% 50ppm/°C", Format(reading))
}

func TestDecode_MissingValuesUseDefaults(t *testing.T) {
	// Золото на месте цифры даёт 0, оранжевый на месте допуска оставляет его пустым.
	reading, err := Decode(entity.FourBands, []entity.Color{entity.Gold, entity.Green, entity.Black, entity.Orange})
	require.NoError(t, err)
	require.Equal(t, 5.0, reading.Ohms)
	require.Nil(t, reading.Tolerance)

	reading, err = Decode(entity.SixBands, []entity.Color{entity.Brown, entity.Black, entity.Black, entity.Black, entity.Brown, entity.White})
	require.NoError(t, err)
	require.Equal(t, 100.0, reading.Ohms)
	require.Nil(t, reading.TempCoeff)
}

func TestDecode_Pure(t *testing.T) {
	colors := []entity.Color{entity.Blue, entity.Gray, entity.Silver, entity.Silver}
	first, err := Decode(entity.FourBands, colors)
	require.NoError(t, err)
	second, err := Decode(entity.FourBands, colors)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "0.68Ω ±10%", Format(first))
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(entity.BandMode(7), []entity.Color{entity.Red})
	require.ErrorIs(t, err, entity.ErrInvalidBandMode)

	_, err = Decode(entity.FiveBands, []entity.Color{entity.Red, entity.Red, entity.Red})
	require.ErrorIs(t, err, ErrBandCountMismatch)
}

func TestNewCode_UsesLeadingColors(t *testing.T) {
	code, err := NewCode(entity.ThreeBands, entity.DefaultColors(entity.SixBands))
	require.NoError(t, err)
	require.Equal(t, entity.ThreeBands, code.Mode())
	require.Equal(t, ThreeBand{entity.Brown, entity.Black, entity.Red}, code)
	require.Equal(t, []entity.Color{entity.Brown, entity.Black, entity.Red}, code.Colors())
}
