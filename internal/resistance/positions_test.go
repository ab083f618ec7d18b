package resistance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"resistor-vision/internal/domain/entity"
)

func TestAllowedColors(t *testing.T) {
	digits := AllowedColors(entity.FourBands, 0)
	require.Len(t, digits, 10)
	require.NotContains(t, digits, entity.Gold)

	multipliers := AllowedColors(entity.FourBands, 2)
	require.Len(t, multipliers, 12)

	tolerances := AllowedColors(entity.FourBands, 3)
	require.Equal(t, []entity.Color{
		entity.Brown, entity.Red, entity.Green, entity.Blue, entity.Violet, entity.Gray, entity.Gold, entity.Silver,
	}, tolerances)

	tempCoeffs := AllowedColors(entity.SixBands, 5)
	require.NotContains(t, tempCoeffs, entity.Black)
	require.Contains(t, tempCoeffs, entity.Orange)

	require.Nil(t, AllowedColors(entity.ThreeBands, 3))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(entity.FourBands, []entity.Color{entity.Brown, entity.Black, entity.Red, entity.Gold}))

	err := Validate(entity.FourBands, []entity.Color{entity.Gold, entity.Black, entity.Red, entity.Gold})
	require.ErrorIs(t, err, ErrColorNotAllowed)
	require.Contains(t, err.Error(), "band 1")

	err = Validate(entity.FourBands, []entity.Color{entity.Brown, entity.Black, entity.Red, entity.Orange})
	require.ErrorIs(t, err, ErrColorNotAllowed)

	err = Validate(entity.FiveBands, []entity.Color{entity.Brown})
	require.ErrorIs(t, err, ErrBandCountMismatch)
}
