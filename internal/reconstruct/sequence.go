// Package reconstruct восстанавливает структуру рабочего набора комментариев:
//   - sequence.go — топологический порядок «родитель раньше ребёнка» (Kahn);
//   - thread.go — вложенное дерево ответов внутри комментария верхнего уровня;
//   - flatten.go — плоский список без вложенности с дедупликацией по ID;
//   - validate.go/lookup.go — проверка формы записей и служебные обходы.
//
// Все функции чистые: не выполняют I/O, не мутируют входные записи
// и безопасны для параллельного вызова на независимых наборах.
package reconstruct

import "github.com/pribylovaa/go-comments-harvester/internal/models"

// Sequence упорядочивает записи так, что каждая запись идёт строго после записи,
// указанной в её Parent (если родитель попал в результат).
//
// Алгоритм — Kahn в ширину: in-degree записи равен 1, если у неё задан Parent;
// очередь засевается записями с in-degree 0 в порядке поступления, извлечение
// записи уменьшает in-degree её детей. Порядок детерминирован.
//
// Поведение на некорректных данных (ошибок не возвращает):
//   - запись с висячим Parent (родителя нет в наборе) никогда не доходит до
//     in-degree 0 и молча исключается вместе со всей цепочкой потомков;
//   - записи, образующие цикл (включая Parent == ID), исключаются так же.
//
// Исключённые записи возвращаются в dropped в порядке поступления:
// len(ordered)+len(dropped) == len(records).
func Sequence(records []models.Comment) (ordered, dropped []models.Comment) {
	if len(records) == 0 {
		return nil, nil
	}

	// parent id -> индексы детей в порядке поступления.
	children := make(map[string][]int, len(records))
	inDegree := make([]int, len(records))

	for i, r := range records {
		if r.Parent == nil {
			continue
		}

		children[*r.Parent] = append(children[*r.Parent], i)
		inDegree[i]++
	}

	queue := make([]int, 0, len(records))
	for i, d := range inDegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	ordered = make([]models.Comment, 0, len(records))
	emitted := make([]bool, len(records))

	for head := 0; head < len(queue); head++ {
		i := queue[head]
		ordered = append(ordered, records[i])
		emitted[i] = true

		for _, child := range children[records[i].ID] {
			inDegree[child]--
			// Дубли ID у родителя уводят in-degree ниже нуля; в очередь ребёнок
			// попадает ровно один раз — в момент достижения нуля.
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	for i, ok := range emitted {
		if !ok {
			dropped = append(dropped, records[i])
		}
	}

	return ordered, dropped
}
