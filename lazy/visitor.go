package lazy

// Visitor walks expression nodes by kind.
type Visitor interface {
	VisitColumn(NodeID, Column) error
	VisitLiteral(NodeID, Literal) error
	VisitBinary(NodeID, Binary) error
	VisitUnary(NodeID, Unary) error
	VisitAgg(NodeID, Agg) error
	VisitFunction(NodeID, Function) error
	VisitOther(NodeID, Node) error
}

// Walk traverses the expression tree rooted at root in post-order: a
// node's children are visited before the node itself.
func Walk(a *Arena, root NodeID, v Visitor) error {
	return walkNode(a, root, v)
}

func walkNode(a *Arena, id NodeID, v Visitor) error {
	node, ok := a.Get(id)
	if !ok {
		return nil
	}
	for _, child := range node.Children {
		if err := walkNode(a, child, v); err != nil {
			return err
		}
	}
	switch payload := node.Payload.(type) {
	case Column:
		return v.VisitColumn(id, payload)
	case Literal:
		return v.VisitLiteral(id, payload)
	case Binary:
		return v.VisitBinary(id, payload)
	case Unary:
		return v.VisitUnary(id, payload)
	case Agg:
		return v.VisitAgg(id, payload)
	case Function:
		return v.VisitFunction(id, payload)
	default:
		return v.VisitOther(id, node)
	}
}
