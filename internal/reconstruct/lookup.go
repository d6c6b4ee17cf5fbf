package reconstruct

import "github.com/pribylovaa/go-comments-harvester/internal/models"

// Walk обходит комментарии и их вложенные ответы в pre-order.
// Обход прекращается, если fn вернул false.
func Walk(comments []models.Comment, fn func(c models.Comment) bool) {
	walk(comments, fn)
}

func walk(comments []models.Comment, fn func(c models.Comment) bool) bool {
	for _, c := range comments {
		if !fn(c) {
			return false
		}

		if !walk(c.Replies, fn) {
			return false
		}
	}

	return true
}

// UniqueAuthors возвращает авторов записей без повторов по Author.ID
// в порядке первого появления (первая копия побеждает).
func UniqueAuthors(records []models.Comment) []models.Author {
	seen := make(map[string]struct{}, len(records))
	var out []models.Author

	Walk(records, func(c models.Comment) bool {
		if _, ok := seen[c.Author.ID]; !ok {
			seen[c.Author.ID] = struct{}{}
			out = append(out, c.Author)
		}

		return true
	})

	return out
}
