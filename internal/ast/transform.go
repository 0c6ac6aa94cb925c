package ast

// Visitor is applied to a node after all of its children have already been
// transformed (post-order), and returns the node's replacement (or itself,
// unchanged).
type Visitor func(*Allocator, Node) (Node, error)

// Transform walks node bottom-up, letting visit replace each node once its
// children are already rewritten. This single generic walk is shared by
// the Operator Rewriter, the Element-Access Rewriter, and the Type
// Remapper — each supplies a different Visitor and lets Transform handle
// the structural recursion (spec.md §9: "write each rewriter as a
// pattern-match over node kinds, returning a possibly new node").
func Transform(alloc *Allocator, node Node, visit Visitor) (Node, error) {
	if node == nil {
		return nil, nil
	}

	var rewritten Node

	switch n := node.(type) {
	case *QualifiedIdent:
		rewritten = n

	case *ConcreteType:
		rewritten = n

	case *CommaList:
		items := make([]Node, len(n.Items))
		for i, it := range n.Items {
			r, err := Transform(alloc, it, visit)
			if err != nil {
				return nil, err
			}
			items[i] = r
		}
		n.Items = items
		rewritten = n

	case *CallOrCast:
		callee, err := Transform(alloc, n.Callee, visit)
		if err != nil {
			return nil, err
		}
		args := make([]Node, len(n.Args))
		for i, a := range n.Args {
			r, err := Transform(alloc, a, visit)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		n.Callee = callee
		n.Args = args
		rewritten = n

	case *DotOperator:
		obj, err := Transform(alloc, n.Object, visit)
		if err != nil {
			return nil, err
		}
		n.Object = obj
		rewritten = n

	case *ArrayElementRef:
		obj, err := Transform(alloc, n.Object, visit)
		if err != nil {
			return nil, err
		}
		idx, err := Transform(alloc, n.Index, visit)
		if err != nil {
			return nil, err
		}
		n.Object = obj
		n.Index = idx
		if n.IsSlice {
			end, err := Transform(alloc, n.SliceEnd, visit)
			if err != nil {
				return nil, err
			}
			n.SliceEnd = end
		}
		rewritten = n

	case *ComplexMemberRef:
		obj, err := Transform(alloc, n.Object, visit)
		if err != nil {
			return nil, err
		}
		n.Object = obj
		rewritten = n

	case *TypeCast:
		src, err := Transform(alloc, n.Source, visit)
		if err != nil {
			return nil, err
		}
		n.Source = src
		rewritten = n

	case *Constant:
		rewritten = n

	case *UnaryOperator:
		operand, err := Transform(alloc, n.Operand, visit)
		if err != nil {
			return nil, err
		}
		n.Operand = operand
		rewritten = n

	case *BinaryOperator:
		left, err := Transform(alloc, n.Left, visit)
		if err != nil {
			return nil, err
		}
		right, err := Transform(alloc, n.Right, visit)
		if err != nil {
			return nil, err
		}
		n.Left = left
		n.Right = right
		rewritten = n

	case *Assignment:
		target, err := Transform(alloc, n.Target, visit)
		if err != nil {
			return nil, err
		}
		value, err := Transform(alloc, n.Value, visit)
		if err != nil {
			return nil, err
		}
		n.Target = target
		n.Value = value
		rewritten = n

	case *ReturnStmt:
		val, err := Transform(alloc, n.Value, visit)
		if err != nil {
			return nil, err
		}
		n.Value = val
		rewritten = n

	case *StructDecl:
		for _, m := range n.Members {
			t, err := Transform(alloc, m.Type, visit)
			if err != nil {
				return nil, err
			}
			m.Type = t
		}
		rewritten = n

	case *NamespaceAliasDecl:
		tgt, err := Transform(alloc, n.Target, visit)
		if err != nil {
			return nil, err
		}
		n.Target = tgt
		rewritten = n

	case *MakeReference:
		inner, err := Transform(alloc, n.Inner, visit)
		if err != nil {
			return nil, err
		}
		n.Inner = inner
		rewritten = n

	case *MakeConst:
		inner, err := Transform(alloc, n.Inner, visit)
		if err != nil {
			return nil, err
		}
		n.Inner = inner
		rewritten = n

	case *BracketedSubscript:
		b, err := Transform(alloc, n.Base, visit)
		if err != nil {
			return nil, err
		}
		l, err := Transform(alloc, n.Length, visit)
		if err != nil {
			return nil, err
		}
		n.Base = b
		n.Length = l
		rewritten = n

	case *Block:
		stmts := make([]Node, len(n.Stmts))
		for i, s := range n.Stmts {
			r, err := Transform(alloc, s, visit)
			if err != nil {
				return nil, err
			}
			stmts[i] = r
		}
		n.Stmts = stmts
		rewritten = n

	case *FunctionDecl:
		body, err := Transform(alloc, n.Body, visit)
		if err != nil {
			return nil, err
		}
		n.Body = body.(*Block)
		rewritten = n

	default:
		rewritten = node
	}

	return visit(alloc, rewritten)
}
