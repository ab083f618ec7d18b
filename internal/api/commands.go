package telegram

import (
	"strconv"
	"strings"
)

// parseMode разбирает аргумент /mode.
func parseMode(args string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseColorArgs разбирает аргументы /calc: цвета через пробел или запятую.
func parseColorArgs(args string) []string {
	return strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
