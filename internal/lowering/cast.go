package lowering

import (
	"dspcc/internal/ast"
	"dspcc/internal/types"
)

// AddCastIfRequired is the Cast Synthesizer (spec §4.A.2). exprType is the
// resolved type of expr. It returns expr unchanged when no coercion is
// needed, otherwise a new *ast.TypeCast node allocated through alloc.
//
// When exprType is complex, the source is decomposed into its real and
// imaginary parts via dot-operator expressions — this is what lets a
// complex value flow into a differently-specialized complex type by
// re-entering the target struct's two-argument constructor.
func AddCastIfRequired(alloc *ast.Allocator, expr ast.Node, exprType, target types.Type) ast.Node {
	if exprType.EqualIgnoringQualifiers(target) {
		return expr
	}

	strippedTarget := target.WithReference(false)
	ctx := expr.Context()

	if exprType.IsComplex() {
		realPart := alloc.NewDotOperator(ctx, expr, "real")
		imagPart := alloc.NewDotOperator(ctx, expr, "imag")
		args := alloc.NewCommaList(ctx, realPart, imagPart)
		return alloc.NewTypeCast(ctx, strippedTarget, args)
	}

	return alloc.NewTypeCast(ctx, strippedTarget, expr)
}
