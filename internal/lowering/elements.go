package lowering

import (
	"dspcc/internal/ast"
)

// RewriteElementAccess is the Element-Access Rewriter (spec §4.A.4): it
// rewrites indexed reads, indexed writes, return-statement coercions, and
// type-cast coercions involving complex data. It must run after
// RewriteOperators, so that operator expressions have already become
// plain calls before element access is rewritten.
func RewriteElementAccess(alloc *ast.Allocator, node ast.Node) (ast.Node, error) {
	return ast.Transform(alloc, node, visitElementAccess)
}

func visitElementAccess(alloc *ast.Allocator, node ast.Node) (ast.Node, error) {
	switch n := node.(type) {

	case *ast.Assignment:
		if n.AssignedType == nil || !RequiresRemapping(*n.AssignedType) {
			return n, nil
		}
		valueType := n.AssignedType
		if n.ValueType != nil {
			valueType = n.ValueType
		}
		castValue := AddCastIfRequired(alloc, n.Value, *valueType, *n.AssignedType)
		n.Value = castValue

		if targetRef, ok := n.Target.(*ast.ArrayElementRef); ok && targetRef.ObjectIsVector {
			callee := alloc.NewQualifiedIdent(n.Context(), "setElement")
			return alloc.NewCallOrCast(n.Context(), callee, targetRef.Object, targetRef.Index, castValue), nil
		}
		// The post-order walk has already rewritten a vector-element target
		// into getElement(vector, index); reuse its two arguments.
		if getter, ok := n.Target.(*ast.CallOrCast); ok && len(getter.Args) == 2 {
			if id, ok := getter.Callee.(*ast.QualifiedIdent); ok && len(id.Parts) == 1 && id.Parts[0] == "getElement" {
				callee := alloc.NewQualifiedIdent(n.Context(), "setElement")
				return alloc.NewCallOrCast(n.Context(), callee, getter.Args[0], getter.Args[1], castValue), nil
			}
		}
		return n, nil

	case *ast.ReturnStmt:
		if n.ReturnType == nil || !RequiresRemapping(*n.ReturnType) {
			return n, nil
		}
		valueType := n.ReturnType
		if n.ValueType != nil {
			valueType = n.ValueType
		}
		n.Value = AddCastIfRequired(alloc, n.Value, *valueType, *n.ReturnType)
		return n, nil

	case *ast.TypeCast:
		// A plain scalar-to-complex cast (source doesn't itself require
		// remapping) is left for the Type Remapper's own TypeCast handling
		// to decompose; rewriting it here too would double-wrap it.
		if !RequiresRemapping(n.Target) || n.SourceType == nil || !RequiresRemapping(*n.SourceType) {
			return n, nil
		}
		n.Source = AddCastIfRequired(alloc, n.Source, *n.SourceType, n.Target)
		return n, nil

	case *ast.ArrayElementRef:
		if n.ResolvedType == nil || !RequiresRemapping(*n.ResolvedType) || !n.ObjectIsVector {
			return n, nil
		}
		callee := alloc.NewQualifiedIdent(n.Context(), "getElement")
		return alloc.NewCallOrCast(n.Context(), callee, n.Object, n.Index), nil

	default:
		return node, nil
	}
}
