// Package detection классифицирует текст как «релевантный» по политике
// include/deny ключевых слов с устойчивостью к leetspeak и опечаткам.
//
// Нормализация (lower-case + leetspeak) решает, ЕСТЬ ли совпадение;
// в результат попадает фрагмент ИСХОДНОГО текста.
package detection

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultThreshold — порог похожести по умолчанию.
const DefaultThreshold = 0.5

// ErrInvalidKeyword — ключевое слово не является валидной UTF-8 строкой.
var ErrInvalidKeyword = errors.New("invalid keyword")

// keyword — ключевое слово с предкомпилированными выражениями.
type keyword struct {
	raw       string
	norm      string
	multiWord bool
	// literal — регистронезависимый поиск ключевого слова как есть.
	// Границы слова проверяет findWord: \b в RE2 знает только ASCII.
	literal *regexp.Regexp
	// normLiteral — нормализованное слово для поиска в нормализованном тексте.
	normLiteral *regexp.Regexp
}

func compileKeyword(raw string) (keyword, error) {
	if !utf8.ValidString(raw) {
		return keyword{}, fmt.Errorf("keyword %q: %w", raw, ErrInvalidKeyword)
	}

	literal, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(raw))
	if err != nil {
		return keyword{}, fmt.Errorf("keyword %q: %w", raw, err)
	}

	norm := Normalize(raw)
	normLiteral, err := regexp.Compile(regexp.QuoteMeta(norm))
	if err != nil {
		return keyword{}, fmt.Errorf("keyword %q: %w", raw, err)
	}

	return keyword{
		raw:         raw,
		norm:        norm,
		multiWord:   strings.Contains(raw, " "),
		literal:     literal,
		normLiteral: normLiteral,
	}, nil
}

// isWordRune — символ слова в смысле Unicode: буква, цифра или '_'.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isBoundary сообщает, что позиция i в s лежит на границе слова:
// ровно с одной стороны от неё стоит символ слова.
func isBoundary(s string, i int) bool {
	before, after := false, false

	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}

	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}

	return before != after
}

// findWord возвращает первое вхождение re в s, ограниченное границами слова.
// Кандидаты перебираются с шагом в одну руну, поэтому пересекающиеся
// вхождения тоже проверяются.
func findWord(re *regexp.Regexp, s string) []int {
	for off := 0; off < len(s); {
		loc := re.FindStringIndex(s[off:])
		if loc == nil {
			return nil
		}

		start, end := off+loc[0], off+loc[1]
		if isBoundary(s, start) && isBoundary(s, end) {
			return []int{start, end}
		}

		_, size := utf8.DecodeRuneInString(s[start:])
		off = start + size
	}

	return nil
}

// find применяет правила сопоставления одного ключевого слова к документу.
//
// Многословное: совпадение, если нормализованное слово — подстрока нормализованного
// текста; отдаётся литеральное вхождение (без учёта регистра), а если оно
// обфусцировано — фрагмент исходного текста на позиции нормализованного совпадения.
//
// Однословное:
//  1. литеральное совпадение целым словом;
//  2. совпадение целым словом в нормализованном тексте (C4T -> cat);
//  3. Ratio(весь нормализованный текст, слово) >= threshold и литеральный поиск.
func (k keyword) find(d *document, threshold float64) (span, bool) {
	if k.multiWord {
		i := strings.Index(d.norm, k.norm)
		if i < 0 {
			return span{}, false
		}

		if loc := k.literal.FindStringIndex(d.text); loc != nil {
			return d.spanAt(loc), true
		}

		return d.spanFromNorm(i, i+len(k.norm)), true
	}

	if loc := findWord(k.literal, d.text); loc != nil {
		return d.spanAt(loc), true
	}

	if loc := findWord(k.normLiteral, d.norm); loc != nil {
		return d.spanFromNorm(loc[0], loc[1]), true
	}

	// Сравнение всего текста с одним словом почти никогда не проходит порог
	// на длинных текстах; поведение сохранено намеренно.
	if Ratio(d.norm, k.norm) >= threshold {
		if loc := k.literal.FindStringIndex(d.text); loc != nil {
			return d.spanAt(loc), true
		}
	}

	return span{}, false
}

// Policy — неизменяемая политика классификации: упорядоченные include/deny списки
// и порог похожести. Безопасна для конкурентного использования.
type Policy struct {
	include   []keyword
	deny      []keyword
	threshold float64
}

// NewPolicy компилирует политику. Пустые (после TrimSpace) ключевые слова пропускаются,
// как и слова, которые не удалось скомпилировать (например, невалидный UTF-8);
// threshold <= 0 заменяется на DefaultThreshold.
func NewPolicy(include, deny []string, threshold float64) *Policy {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	return &Policy{
		include:   compileAll(include),
		deny:      compileAll(deny),
		threshold: threshold,
	}
}

func compileAll(words []string) []keyword {
	out := make([]keyword, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}

		k, err := compileKeyword(w)
		if err != nil {
			continue
		}

		out = append(out, k)
	}

	return out
}

// Threshold возвращает действующий порог похожести.
func (p *Policy) Threshold() float64 {
	return p.threshold
}

// Detect возвращает фрагменты исходного текста, сработавшие на include-список,
// за вычетом подавленных deny-списком. Порядок — порядок include-списка,
// дубли возможны (разные слова могут дать один и тот же фрагмент).
//
// Совпадение подавляется, если его текст равен deny-совпадению либо
// оно целиком лежит внутри deny-совпадения ("spam" внутри "spam free").
func (p *Policy) Detect(text string) []string {
	if p == nil || len(p.include) == 0 {
		return nil
	}

	doc := newDocument(text)

	hits := make([]span, 0, len(p.include))
	for _, k := range p.include {
		if s, ok := k.find(doc, p.threshold); ok {
			hits = append(hits, s)
		}
	}

	if len(hits) == 0 {
		return nil
	}

	var denied []span
	for _, k := range p.deny {
		if s, ok := k.find(doc, p.threshold); ok {
			denied = append(denied, s)
		}
	}

	var out []string
	for _, h := range hits {
		if !suppressed(h, denied) {
			out = append(out, h.text)
		}
	}

	return out
}

// Relevant сообщает, есть ли в тексте хотя бы одно неподавленное совпадение.
func (p *Policy) Relevant(text string) bool {
	return len(p.Detect(text)) > 0
}

func suppressed(h span, denied []span) bool {
	for _, d := range denied {
		if d.text == h.text {
			return true
		}

		if d.start <= h.start && h.end <= d.end {
			return true
		}
	}

	return false
}

// Detect — разовый вызов без предварительной компиляции политики.
func Detect(text string, include, deny []string, threshold float64) []string {
	return NewPolicy(include, deny, threshold).Detect(text)
}
