package reconstruct

import (
	"testing"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
)

// rec — быстрый хелпер сборки записи; parent == "" означает корень.
func rec(id, parent string) models.Comment {
	c := models.Comment{
		ID:     id,
		Author: models.Author{ID: "u-" + id, Username: "user_" + id},
		Text:   "text " + id,
	}

	if parent != "" {
		p := parent
		c.Parent = &p
	}

	return c
}

// ids — идентификаторы записей в порядке следования.
func ids(records []models.Comment) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}

	return out
}

// positions — индекс каждого ID в срезе.
func positions(t *testing.T, records []models.Comment) map[string]int {
	t.Helper()

	pos := make(map[string]int, len(records))
	for i, r := range records {
		pos[r.ID] = i
	}

	return pos
}
