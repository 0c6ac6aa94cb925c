package lowering

import "dspcc/internal/ast"

// RunPass is the Pass Driver (spec §4.A entry point): it runs the
// Operator Rewriter, then the Element-Access Rewriter, then the Type
// Remapper, in that fixed order, over every function body and top-level
// struct declaration in mod. New namespace alias declarations are
// appended to library (which may be mod itself for a single-module
// program, or a separate top-level library module). aliasPrefix overrides
// the namespace prefix the Type Remapper specializes; an empty string
// falls back to DefaultAliasPrefix.
func RunPass(alloc *ast.Allocator, mod *ast.Module, library *ast.Module, aliasPrefix string) error {
	state := NewRemapState(library, aliasPrefix)

	for i, fn := range mod.Functions {
		rewritten, err := RewriteOperators(alloc, fn)
		if err != nil {
			return err
		}
		mod.Functions[i] = rewritten.(*ast.FunctionDecl)
	}
	for i, fn := range mod.Functions {
		rewritten, err := RewriteElementAccess(alloc, fn)
		if err != nil {
			return err
		}
		mod.Functions[i] = rewritten.(*ast.FunctionDecl)
	}
	for i, fn := range mod.Functions {
		rewritten, err := RewriteTypeRemap(alloc, state, fn)
		if err != nil {
			return err
		}
		mod.Functions[i] = rewritten.(*ast.FunctionDecl)
	}

	for i, sd := range mod.Structs {
		rewritten, err := RewriteTypeRemap(alloc, state, sd)
		if err != nil {
			return err
		}
		mod.Structs[i] = rewritten.(*ast.StructDecl)
	}

	return nil
}
