// Package cleantext выбрасывает из байтовых данных некорректные UTF-8
// последовательности. Устройство на несовпадающей скорости шлет мусор,
// который нельзя печатать и сравнивать как текст.
package cleantext

import (
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Strip возвращает строку без нечитаемых байтов: некорректные
// последовательности сначала сводятся к U+FFFD, затем удаляются.
func Strip(b []byte) string {
	t := transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
	out, _, err := transform.Bytes(t, b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
