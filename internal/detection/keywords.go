package detection

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// LoadKeywords читает список ключевых слов из файла: одно слово/фраза на строку,
// пустые строки и строки, начинающиеся с '#', пропускаются.
// Пустой path -> пустой список без ошибки (deny-список опционален).
func LoadKeywords(path string) ([]string, error) {
	const op = "detection/keywords/LoadKeywords"

	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	words, err := ReadKeywords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return words, nil
}

// ReadKeywords разбирает построчный список ключевых слов из r.
// Строка, не являющаяся валидным UTF-8 (например, файл в Latin-1),
// даёт ErrInvalidKeyword с номером строки.
func ReadKeywords(r io.Reader) ([]string, error) {
	var words []string

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", n, ErrInvalidKeyword)
		}

		words = append(words, line)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return words, nil
}
