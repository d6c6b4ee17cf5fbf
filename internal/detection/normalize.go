package detection

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// leetspeak — таблица замен цифр/символов на буквы; применяется после lower-case.
var leetspeak = map[rune]rune{
	'4': 'a',
	'3': 'e',
	'1': 'i',
	'0': 'o',
	'@': 'a',
	'$': 's',
	'7': 't',
	'5': 's',
	'+': 't',
}

// Normalize приводит текст к нижнему регистру и снимает leetspeak-замены.
// Преобразование посимвольное: каждой руне входа соответствует ровно одна руна выхода.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		b.WriteRune(normalizeRune(r))
	}

	return b.String()
}

func normalizeRune(r rune) rune {
	r = unicode.ToLower(r)
	if m, ok := leetspeak[r]; ok {
		return m
	}

	return r
}

// Ratio — мера похожести последовательностей символов a и b в [0, 1]
// (Ratcliff/Obershelp, 2*M/T), как у difflib.SequenceMatcher.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}

	return out
}

// document — исходный текст, его нормализованная форма и соответствие позиций.
// origOff[i]/normOff[i] — байтовые смещения i-й руны в text/norm;
// последний элемент — длина строки (сентинел).
type document struct {
	text    string
	norm    string
	origOff []int
	normOff []int
}

func newDocument(text string) *document {
	d := &document{
		origOff: make([]int, 0, len(text)+1),
		normOff: make([]int, 0, len(text)+1),
	}

	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		d.origOff = append(d.origOff, i)
		d.normOff = append(d.normOff, b.Len())
		b.WriteRune(normalizeRune(r))
	}

	d.text = text
	d.norm = b.String()
	d.origOff = append(d.origOff, len(text))
	d.normOff = append(d.normOff, len(d.norm))

	return d
}

// span — найденный фрагмент исходного текста и его байтовые границы.
type span struct {
	text       string
	start, end int
}

// spanAt строит span по байтовым границам в исходном тексте.
func (d *document) spanAt(loc []int) span {
	return span{text: d.text[loc[0]:loc[1]], start: loc[0], end: loc[1]}
}

// spanFromNorm переводит границы совпадения в нормализованном тексте
// в границы исходного текста.
func (d *document) spanFromNorm(start, end int) span {
	si := sort.SearchInts(d.normOff, start)
	ei := sort.SearchInts(d.normOff, end)

	return d.spanAt([]int{d.origOff[si], d.origOff[ei]})
}
