package lowering

import (
	"fmt"

	"dspcc/internal/ast"
	"dspcc/internal/errors"
)

// binaryFuncNames maps a resolved binary operator spelling to the
// unqualified function it's rewritten into when its operand type requires
// remapping (spec §4.A.3). Any operator absent from this map is a compile
// error on complex operands.
var binaryFuncNames = map[string]string{
	"+":  "add",
	"-":  "subtract",
	"*":  "multiply",
	"/":  "divide",
	"==": "equals",
	"!=": "notEquals",
}

// RewriteOperators is the Operator Rewriter (spec §4.A.3): it rewrites
// resolved unary and binary operator nodes whose operand type requires
// remapping into unresolved calls to the corresponding library function,
// and promotes complex-member references out of vector indexing
// (`a[b].real` becomes `a.real[b]`).
func RewriteOperators(alloc *ast.Allocator, node ast.Node) (ast.Node, error) {
	return ast.Transform(alloc, node, visitOperators)
}

func visitOperators(alloc *ast.Allocator, node ast.Node) (ast.Node, error) {
	switch n := node.(type) {

	case *ast.ComplexMemberRef:
		if innerRef, ok := n.Object.(*ast.ArrayElementRef); ok {
			promoted := alloc.NewDotOperator(n.Context(), innerRef.Object, n.Member)
			newRef := alloc.NewArrayElementRef(n.Context(), promoted, innerRef.Index)
			newRef.SliceEnd = innerRef.SliceEnd
			newRef.IsSlice = innerRef.IsSlice
			newRef.ObjectIsVector = innerRef.ObjectIsVector
			newRef.ResolvedType = innerRef.ResolvedType
			return newRef, nil
		}
		return alloc.NewDotOperator(n.Context(), n.Object, n.Member), nil

	case *ast.UnaryOperator:
		if n.ResolvedType == nil || !RequiresRemapping(*n.ResolvedType) {
			return n, nil
		}
		if n.Operator != "negate" {
			return nil, errors.NewCompileError(errors.UnsupportedUnaryOnComplex,
				fmt.Sprintf("unary operator %q is not supported on complex operands", n.Operator),
				n.Context())
		}
		callee := alloc.NewQualifiedIdent(n.Context(), "negate")
		return alloc.NewCallOrCast(n.Context(), callee, n.Operand), nil

	case *ast.BinaryOperator:
		if n.OperandType == nil || !RequiresRemapping(*n.OperandType) {
			return n, nil
		}
		fname, ok := binaryFuncNames[n.Operator]
		if !ok {
			return nil, errors.NewCompileError(errors.IllegalBinaryOnComplex,
				fmt.Sprintf("binary operator %q is not legal on complex operands", n.Operator),
				n.Context())
		}
		leftType := n.OperandType
		if n.LeftType != nil {
			leftType = n.LeftType
		}
		rightType := n.OperandType
		if n.RightType != nil {
			rightType = n.RightType
		}
		castLeft := AddCastIfRequired(alloc, n.Left, *leftType, *n.OperandType)
		castRight := AddCastIfRequired(alloc, n.Right, *rightType, *n.OperandType)
		callee := alloc.NewQualifiedIdent(n.Context(), fname)
		return alloc.NewCallOrCast(n.Context(), callee, castLeft, castRight), nil

	default:
		return node, nil
	}
}
