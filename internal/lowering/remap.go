package lowering

import (
	"fmt"

	"dspcc/internal/ast"
	"dspcc/internal/types"
)

// DefaultAliasPrefix is the namespace prefix RemapState specializes when no
// override is given (spec §4.A.5's own examples: complex_lib32_4).
const DefaultAliasPrefix = "complex_lib"

// RemapState tracks the specialization keys already materialized during
// one pass-run and holds a handle to the top-level library module new
// namespace alias declarations are appended to (spec §3.1 "Pass state",
// §4.A.5). The key set must be reset per pass-run.
type RemapState struct {
	keys    map[SpecializationKey]string
	library *ast.Module
	prefix  string
}

// NewRemapState returns a RemapState targeting the given library module,
// with an empty key set. An empty prefix falls back to DefaultAliasPrefix.
func NewRemapState(library *ast.Module, prefix string) *RemapState {
	if prefix == "" {
		prefix = DefaultAliasPrefix
	}
	return &RemapState{keys: make(map[SpecializationKey]string), library: library, prefix: prefix}
}

// Reset clears the materialized-key set, as required at the start of each
// pass-run (spec §4.A.5: "The key set is reset per pass-run").
func (rs *RemapState) Reset() {
	rs.keys = make(map[SpecializationKey]string)
}

// aliasName is the deterministic name for a specialization key under this
// state's prefix, e.g. complex_lib32_4.
func (rs *RemapState) aliasName(key SpecializationKey) string {
	return fmt.Sprintf("%s%d_%d", rs.prefix, key.Precision, key.VectorSize)
}

// ensureAlias returns the namespace alias declaration for key, synthesizing
// and appending it to the library module on first encounter (spec §4.A.5).
func (rs *RemapState) ensureAlias(alloc *ast.Allocator, ctx ast.SourceContext, key SpecializationKey) string {
	name := rs.aliasName(key)
	if _, seen := rs.keys[key]; seen {
		return name
	}
	if existing := rs.library.FindAlias(name); existing != nil {
		rs.keys[key] = name
		return name
	}

	floatName := "float32"
	if key.Precision == 64 {
		floatName = "float64"
	}
	callee := alloc.NewQualifiedIdent(ctx, "soul", "complex_lib")
	floatArg := alloc.NewQualifiedIdent(ctx, floatName)
	sizeArg := alloc.NewConstant(ctx, int64(key.VectorSize), nil)
	target := alloc.NewCallOrCast(ctx, callee, floatArg, sizeArg)

	decl := alloc.NewNamespaceAliasDecl(ctx, name, target)
	rs.library.AddAlias(decl)
	rs.keys[key] = name
	return name
}

// remappedTypeExpr builds the expression tree a type T that
// RequiresRemapping is rewritten into: a qualified identifier into the
// specialized namespace, wrapped (innermost first) by an array subscript,
// then makeReference, then makeConst (spec §4.A.5).
func (rs *RemapState) remappedTypeExpr(alloc *ast.Allocator, ctx ast.SourceContext, t types.Type) ast.Node {
	key := KeyFor(t)
	name := rs.ensureAlias(alloc, ctx, key)

	var expr ast.Node = alloc.NewQualifiedIdent(ctx, "soul", name, "ComplexType")

	if t.IsArray() {
		length := alloc.NewConstant(ctx, int64(t.ArrayLength()), nil)
		expr = alloc.NewBracketedSubscript(ctx, expr, length)
	}
	if t.IsReference() {
		expr = alloc.NewMakeReference(ctx, expr)
	}
	if t.IsConst() {
		expr = alloc.NewMakeConst(ctx, expr)
	}
	return expr
}

// RewriteTypeRemap is the Type Remapper (spec §4.A.5). It replaces every
// remaining complex type node with a reference to a generated,
// specialized namespace, decomposes complex constants into separate real
// and imaginary constants, and rewrites type-cast targets that require
// remapping.
func RewriteTypeRemap(alloc *ast.Allocator, state *RemapState, node ast.Node) (ast.Node, error) {
	return ast.Transform(alloc, node, state.visit)
}

func (rs *RemapState) visit(alloc *ast.Allocator, node ast.Node) (ast.Node, error) {
	switch n := node.(type) {

	case *ast.ConcreteType:
		if !RequiresRemapping(n.Type) {
			return n, nil
		}
		replacement := rs.remappedTypeExpr(alloc, n.Context(), n.Type)
		if n.EnclosingStruct != nil {
			n.EnclosingStruct.NotifyMemberTypeChanged()
		}
		return replacement, nil

	case *ast.TypeCast:
		if !RequiresRemapping(n.Target) {
			return n, nil
		}
		callee := rs.remappedTypeExpr(alloc, n.Context(), n.Target)
		var args []ast.Node
		if list, ok := n.Source.(*ast.CommaList); ok {
			args = list.Items
		} else {
			zero := alloc.NewConstant(n.Context(), int64(0), nil)
			args = []ast.Node{n.Source, zero}
		}
		return alloc.NewCallOrCast(n.Context(), callee, args...), nil

	case *ast.Constant:
		if n.ResolvedType == nil || !RequiresRemapping(*n.ResolvedType) {
			return n, nil
		}
		return rs.decomposeConstant(alloc, n)

	default:
		return node, nil
	}
}

// decomposeConstant splits a complex (or vector-of-complex) constant into
// its real and imaginary halves, each a plain constant of the matching
// float precision (spec §4.A.5: "complex32 → float32, complex64 →
// float64").
func (rs *RemapState) decomposeConstant(alloc *ast.Allocator, n *ast.Constant) (ast.Node, error) {
	t := *n.ResolvedType
	callee := rs.remappedTypeExpr(alloc, n.Context(), t)

	switch v := n.Value.(type) {
	case ast.ComplexValue:
		real, imag := floatPair(v, t)
		realConst := alloc.NewConstant(n.Context(), real, nil)
		imagConst := alloc.NewConstant(n.Context(), imag, nil)
		return alloc.NewCallOrCast(n.Context(), callee, realConst, imagConst), nil

	case []ast.ComplexValue:
		realConst := alloc.NewConstant(n.Context(), vectorOf(v, t, true), nil)
		imagConst := alloc.NewConstant(n.Context(), vectorOf(v, t, false), nil)
		return alloc.NewCallOrCast(n.Context(), callee, realConst, imagConst), nil

	default:
		return n, nil
	}
}

func floatPair(v ast.ComplexValue, t types.Type) (interface{}, interface{}) {
	if complexLeaf(t).IsComplex32() {
		return float32(v.Real), float32(v.Imag)
	}
	return v.Real, v.Imag
}

// vectorOf produces a same-width []float32 or []float64 holding the real
// (or, when real is false, imaginary) component of each element of v.
func vectorOf(v []ast.ComplexValue, t types.Type, real bool) interface{} {
	if complexLeaf(t).IsComplex32() {
		out := make([]float32, len(v))
		for i, cv := range v {
			if real {
				out[i] = float32(cv.Real)
			} else {
				out[i] = float32(cv.Imag)
			}
		}
		return out
	}
	out := make([]float64, len(v))
	for i, cv := range v {
		if real {
			out[i] = cv.Real
		} else {
			out[i] = cv.Imag
		}
	}
	return out
}

// complexLeaf descends through at most one array and one vector layer to
// find the underlying complex type, whose precision determines the
// decomposed constants' float width.
func complexLeaf(t types.Type) types.Type {
	leaf := t
	if leaf.IsArray() {
		leaf = *leaf.Element()
	}
	if leaf.IsVector() {
		leaf = *leaf.Element()
	}
	return leaf
}
