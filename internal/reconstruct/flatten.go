package reconstruct

import "github.com/pribylovaa/go-comments-harvester/internal/models"

// Flatten собирает одноуровневый список: сначала комментарии верхнего уровня
// (без Replies), затем все их ответы любой глубины в порядке обхода
// (по комментариям, внутри — pre-order).
//
// Итог дедуплицируется по ID: остаётся первая встреченная запись, последующие
// отбрасываются. Число отброшенных дублей возвращается вторым значением.
func Flatten(comments []models.Comment) ([]models.Comment, int) {
	combined := make([]models.Comment, 0, len(comments))
	var replies []models.Comment

	for _, c := range comments {
		replies = append(replies, collectReplies(c.Replies)...)
		c.Replies = nil
		combined = append(combined, c)
	}

	combined = append(combined, replies...)

	return Dedupe(combined)
}

// Dedupe оставляет по одной записи на ID (первая встреченная побеждает)
// и возвращает число отброшенных записей.
func Dedupe(records []models.Comment) ([]models.Comment, int) {
	if len(records) == 0 {
		return records, 0
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]models.Comment, 0, len(records))

	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}

		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	return out, len(records) - len(out)
}

// collectReplies разворачивает дерево ответов в плоский список (pre-order),
// у каждой копии Replies обнуляется.
func collectReplies(replies []models.Comment) []models.Comment {
	if len(replies) == 0 {
		return nil
	}

	out := make([]models.Comment, 0, len(replies))
	for _, r := range replies {
		nested := r.Replies
		r.Replies = nil
		out = append(out, r)
		out = append(out, collectReplies(nested)...)
	}

	return out
}
