package service

import (
	"strings"
	"unicode"
)

// sanitizeText приводит пользовательский текст к безопасному виду:
//   - обрезает пробелы по краям;
//   - удаляет управляющие символы (для многострочного текста \n и \t остаются);
//   - удаляет угловые скобки;
//   - обрезает до maxRunes символов.
func sanitizeText(s string, maxRunes int, multiline bool) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '<' || r == '>':
			continue
		case multiline && (r == '\n' || r == '\t'):
			b.WriteRune(r)
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	if maxRunes > 0 {
		if runes := []rune(out); len(runes) > maxRunes {
			out = strings.TrimSpace(string(runes[:maxRunes]))
		}
	}
	return out
}
