package reconstruct

import (
	"testing"

	"github.com/pribylovaa/go-comments-harvester/internal/models"
	"github.com/stretchr/testify/require"
)

// Тесты Thread (thread.go).
//
// Проверяем:
//  - вложенность до сходимости (ответ на ответ на ответ ...);
//  - каждый ответ ровно в одном месте (без потерь и дублей);
//  - ответы с неразрешимым родителем и циклы остаются на верхнем уровне;
//  - ответы не переезжают между разными комментариями верхнего уровня;
//  - вход не мутируется.

// countReplies — число ответов во всех поддеревьях.
func countReplies(comments []models.Comment) map[string]int {
	seen := make(map[string]int)
	var walkFn func(rs []models.Comment)
	walkFn = func(rs []models.Comment) {
		for _, r := range rs {
			seen[r.ID]++
			walkFn(r.Replies)
		}
	}
	for _, c := range comments {
		walkFn(c.Replies)
	}
	return seen
}

// TestThread_NestsToConvergence — пример из документации площадки:
//
//	comment: A, B->A, C->B, D->A, E->B, F->C
//	=> A{B{C{F}, E}, D}
func TestThread_NestsToConvergence(t *testing.T) {
	t.Parallel()

	comment := rec("c", "")
	comment.Replies = []models.Comment{
		rec("A", "c"),
		rec("B", "A"),
		rec("C", "B"),
		rec("D", "A"),
		rec("E", "B"),
		rec("F", "C"),
	}

	out := Thread([]models.Comment{comment})
	require.Len(t, out, 1)

	top := out[0].Replies
	require.Equal(t, []string{"A"}, ids(top))
	require.Equal(t, []string{"B", "D"}, ids(top[0].Replies))
	require.Equal(t, []string{"C", "E"}, ids(top[0].Replies[0].Replies))
	require.Equal(t, []string{"F"}, ids(top[0].Replies[0].Replies[0].Replies))

	for id, n := range countReplies(out) {
		require.Equal(t, 1, n, "reply %s must appear exactly once", id)
	}
	require.Len(t, countReplies(out), 6)
}

// TestThread_ChildBeforeParent — ребёнок, пришедший раньше родителя, всё равно вкладывается.
func TestThread_ChildBeforeParent(t *testing.T) {
	t.Parallel()

	comment := rec("c", "")
	comment.Replies = []models.Comment{
		rec("late", "early"),
		rec("early", "c"),
	}

	out := Thread([]models.Comment{comment})
	require.Equal(t, []string{"early"}, ids(out[0].Replies))
	require.Equal(t, []string{"late"}, ids(out[0].Replies[0].Replies))
}

// TestThread_UnresolvableParentStaysTop — родителя нет среди ответов комментария.
func TestThread_UnresolvableParentStaysTop(t *testing.T) {
	t.Parallel()

	c1 := rec("c1", "")
	c1.Replies = []models.Comment{rec("r1", "c1")}

	c2 := rec("c2", "")
	// r2 ссылается на ответ чужого комментария — межкомментарных связей нет.
	c2.Replies = []models.Comment{rec("r2", "r1"), rec("r3", "ghost")}

	out := Thread([]models.Comment{c1, c2})
	require.Equal(t, []string{"r1"}, ids(out[0].Replies))
	require.Empty(t, out[0].Replies[0].Replies)
	require.Equal(t, []string{"r2", "r3"}, ids(out[1].Replies))
}

// TestThread_CycleDoesNotLoseReplies — цикл a<->b разрывается, оба ответа сохраняются.
func TestThread_CycleDoesNotLoseReplies(t *testing.T) {
	t.Parallel()

	comment := rec("c", "")
	comment.Replies = []models.Comment{rec("a", "b"), rec("b", "a"), rec("s", "s")}

	out := Thread([]models.Comment{comment})

	seen := countReplies(out)
	require.Equal(t, map[string]int{"a": 1, "b": 1, "s": 1}, seen)
	require.Equal(t, []string{"b", "s"}, ids(out[0].Replies))
	require.Equal(t, []string{"a"}, ids(out[0].Replies[0].Replies))
}

// TestThread_Idempotent — повторный вызов на результате не меняет дерево.
func TestThread_Idempotent(t *testing.T) {
	t.Parallel()

	comment := rec("c", "")
	comment.Replies = []models.Comment{
		rec("A", "c"), rec("B", "A"), rec("C", "B"), rec("D", "A"),
	}

	once := Thread([]models.Comment{comment})
	twice := Thread(once)
	require.Equal(t, once, twice)
}

// TestThread_DoesNotMutateInput — исходный плоский список ответов не меняется.
func TestThread_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	comment := rec("c", "")
	comment.Replies = []models.Comment{rec("A", "c"), rec("B", "A")}
	in := []models.Comment{comment}

	_ = Thread(in)
	require.Equal(t, []string{"A", "B"}, ids(in[0].Replies))
	require.Nil(t, in[0].Replies[0].Replies)
}

// TestThread_NoReplies — комментарии без ответов проходят как есть.
func TestThread_NoReplies(t *testing.T) {
	t.Parallel()

	out := Thread([]models.Comment{rec("c1", ""), rec("c2", "")})
	require.Equal(t, []string{"c1", "c2"}, ids(out))
	require.Nil(t, out[0].Replies)
	require.Nil(t, Thread(nil))
}
