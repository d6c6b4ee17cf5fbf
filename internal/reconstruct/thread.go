package reconstruct

import "github.com/pribylovaa/go-comments-harvester/internal/models"

// node — узел дерева ответов одного комментария верхнего уровня.
type node struct {
	reply    models.Comment
	parent   *node
	children []*node
}

// Thread перестраивает ответы каждого комментария верхнего уровня во вложенное дерево:
// ответ, чей логический родитель — другой ответ того же комментария, становится
// ребёнком этого ответа, а не соседом.
//
// Логический родитель: Parent задан и не равен ID владеющего комментария.
// Ответы никогда не связываются между разными комментариями верхнего уровня.
//
// Гарантии:
//   - вложенность разрешается до сходимости (произвольная глубина) за один
//     проход передачи владения по индексу id -> узел;
//   - каждый ответ оказывается ровно в одном месте дерева;
//   - ответ с неразрешимым родителем или замыкающий цикл остаётся в списке
//     ответов комментария;
//   - порядок соседей соответствует входному.
//
// Уже вложенные во входе ответы предварительно разворачиваются (pre-order),
// поэтому при ацикличных ссылках повторный вызов Thread на своём же результате
// ничего не меняет.
func Thread(comments []models.Comment) []models.Comment {
	if comments == nil {
		return nil
	}

	out := make([]models.Comment, len(comments))
	for i, c := range comments {
		c.Replies = nestReplies(c.ID, collectReplies(c.Replies))
		out[i] = c
	}

	return out
}

// nestReplies строит дерево из плоского списка ответов комментария ownerID.
func nestReplies(ownerID string, replies []models.Comment) []models.Comment {
	if len(replies) == 0 {
		return nil
	}

	nodes := make([]*node, len(replies))
	index := make(map[string]*node, len(replies))

	for i, r := range replies {
		n := &node{reply: r}
		nodes[i] = n

		// При дублях ID родителем считается первый встреченный.
		if _, ok := index[r.ID]; !ok {
			index[r.ID] = n
		}
	}

	var top []*node
	for _, n := range nodes {
		p := logicalParent(ownerID, n.reply, index)
		if p == nil || p == n || isAncestor(n, p) {
			top = append(top, n)
			continue
		}

		n.parent = p
		p.children = append(p.children, n)
	}

	return materialize(top)
}

// logicalParent возвращает узел-родителя среди ответов того же комментария.
func logicalParent(ownerID string, reply models.Comment, index map[string]*node) *node {
	if reply.Parent == nil || *reply.Parent == ownerID {
		return nil
	}

	return index[*reply.Parent]
}

// isAncestor сообщает, является ли n предком p (привязка n под p замкнула бы цикл).
func isAncestor(n, p *node) bool {
	for cur := p.parent; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}

	return false
}

// materialize превращает узлы в значения models.Comment с вложенными Replies.
func materialize(nodes []*node) []models.Comment {
	if len(nodes) == 0 {
		return nil
	}

	out := make([]models.Comment, len(nodes))
	for i, n := range nodes {
		c := n.reply
		c.Replies = materialize(n.children)
		out[i] = c
	}

	return out
}
