package reconstruct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
)

// ErrMalformedRecord — у записи отсутствуют обязательные поля (ID, Author.ID)
// или задан пустой Parent. Нарушение контракта вызывающей стороны.
var ErrMalformedRecord = errors.New("malformed record")

// Validate проверяет форму записей (включая вложенные Replies) и падает на первой
// некорректной, называя её позицию и идентификатор.
//
// Висячие родители и дубли ID ошибкой НЕ считаются — это зона Sequence/Dedupe.
func Validate(records []models.Comment) error {
	const op = "reconstruct/validate/Validate"

	if err := validate(records, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func validate(records []models.Comment, path string) error {
	for i, r := range records {
		pos := fmt.Sprintf("%s%d", path, i)

		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("record #%s: empty id: %w", pos, ErrMalformedRecord)
		}

		if strings.TrimSpace(r.Author.ID) == "" {
			return fmt.Errorf("record #%s (id=%s): empty author id: %w", pos, r.ID, ErrMalformedRecord)
		}

		if r.Parent != nil && strings.TrimSpace(*r.Parent) == "" {
			return fmt.Errorf("record #%s (id=%s): empty parent: %w", pos, r.ID, ErrMalformedRecord)
		}

		if err := validate(r.Replies, pos+"."); err != nil {
			return err
		}
	}

	return nil
}
