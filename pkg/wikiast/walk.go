package wikiast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of every node in the forest.
// Link href and segment nodes are visited after the link itself, href first.
// If walkFunc returns a non-nil error, the walk stops and returns that error.
func Walk(nodes []*Node, walkFunc WalkFunc) error {
	return WalkWithContext(nodes, WalkContextFunc(walkFunc), nil)
}

// WalkContextFunc is the function signature for WalkWithContext callbacks.
type WalkContextFunc func(n *Node) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(nodes []*Node, enter, leave WalkContextFunc) error {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := walkNode(node, enter, leave); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(node *Node, enter, leave WalkContextFunc) error {
	if enter != nil {
		if err := enter(node); err != nil {
			return err
		}
	}

	if node.Link != nil {
		if err := WalkWithContext(node.Link.Href, enter, leave); err != nil {
			return err
		}
		for _, seg := range node.Link.Segments {
			if err := WalkWithContext(seg, enter, leave); err != nil {
				return err
			}
		}
	}

	if err := WalkWithContext(node.Children, enter, leave); err != nil {
		return err
	}

	if leave != nil {
		if err := leave(node); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate.
func FindAll(nodes []*Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(nodes, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(nodes []*Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(nodes, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(nodes []*Node, kind NodeKind) []*Node {
	return FindAll(nodes, func(n *Node) bool {
		return n.Kind == kind
	})
}

// Count returns the number of nodes in the forest.
func Count(nodes []*Node) int {
	count := 0
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(nodes, func(*Node) error {
		count++
		return nil
	})
	return count
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
