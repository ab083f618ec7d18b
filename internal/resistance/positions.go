package resistance

import (
	"errors"
	"fmt"

	"resistor-vision/internal/domain/entity"
)

// ErrColorNotAllowed возвращается, если цвет не может стоять на данной позиции.
var ErrColorNotAllowed = errors.New("color is not allowed at this band position")

// Role назначение полосы в режиме
type Role int

const (
	RoleDigit Role = iota
	RoleMultiplier
	RoleTolerance
	RoleTempCoeff
)

func (r Role) String() string {
	switch r {
	case RoleDigit:
		return "digit"
	case RoleMultiplier:
		return "multiplier"
	case RoleTolerance:
		return "tolerance"
	case RoleTempCoeff:
		return "tempcoeff"
	default:
		return "unknown"
	}
}

// Roles возвращает назначение каждой позиции режима слева направо.
func Roles(mode entity.BandMode) []Role {
	switch mode {
	case entity.ThreeBands:
		return []Role{RoleDigit, RoleDigit, RoleMultiplier}
	case entity.FourBands:
		return []Role{RoleDigit, RoleDigit, RoleMultiplier, RoleTolerance}
	case entity.FiveBands:
		return []Role{RoleDigit, RoleDigit, RoleDigit, RoleMultiplier, RoleTolerance}
	case entity.SixBands:
		return []Role{RoleDigit, RoleDigit, RoleDigit, RoleMultiplier, RoleTolerance, RoleTempCoeff}
	default:
		return nil
	}
}

// AllowedColors возвращает цвета, которые кодируют значение для позиции position режима mode.
func AllowedColors(mode entity.BandMode, position int) []entity.Color {
	roles := Roles(mode)
	if position < 0 || position >= len(roles) {
		return nil
	}
	var out []entity.Color
	for _, c := range entity.AllColors() {
		if allows(roles[position], c) {
			out = append(out, c)
		}
	}
	return out
}

// Validate проверяет ручной ввод: каждый цвет должен кодировать значение своей позиции.
// Распознавание с фото эту проверку не проходит, там отсутствующие значения заменяются по умолчанию.
func Validate(mode entity.BandMode, colors []entity.Color) error {
	roles := Roles(mode)
	if roles == nil {
		return fmt.Errorf("%w: %d", entity.ErrInvalidBandMode, mode)
	}
	if len(colors) < len(roles) {
		return fmt.Errorf("%w: mode %d, got %d colors", ErrBandCountMismatch, mode, len(colors))
	}
	for i, role := range roles {
		if !allows(role, colors[i]) {
			return fmt.Errorf("%w: band %d (%s) cannot be %s", ErrColorNotAllowed, i+1, role, colors[i])
		}
	}
	return nil
}

func allows(role Role, c entity.Color) bool {
	var ok bool
	switch role {
	case RoleDigit:
		_, ok = c.Digit()
	case RoleMultiplier:
		_, ok = c.Multiplier()
	case RoleTolerance:
		_, ok = c.Tolerance()
	case RoleTempCoeff:
		_, ok = c.TempCoeff()
	}
	return ok
}
