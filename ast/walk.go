package ast

// Walk traverses the tree rooted at node in depth-first pre-order over
// generic children. If fn returns false for a node, its children are
// skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range node.Children() {
		Walk(child, fn)
	}
}

// Inspect returns every node reachable from node in the order Walk visits
// them.
func Inspect(node Node) []Node {
	var nodes []Node
	Walk(node, func(n Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
