package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"dspcc/internal/ast"
	"dspcc/internal/config"
	"dspcc/internal/lowering"
	"dspcc/internal/types"
)

// lowerCommand runs the Core A lowering pass over a small synthesized
// demo module exercising a complex addition, printing the resulting alias
// list. It exists to give the pass a runnable entry point; real callers
// embed internal/lowering directly against their own resolved AST.
func lowerCommand(settings *config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lower",
		Short: "Run the complex-number lowering pass over a demo module",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stderr, "dspcc: ", log.LstdFlags)
			if settings.Debug {
				logger.Printf("running demo lowering pass at precision %d", settings.Precision)
			}

			alloc := ast.NewAllocator()
			library := ast.NewModule("library")
			mod := demoModule(alloc, settings.Precision)

			if err := lowering.RunPass(alloc, mod, library, settings.LibraryAliasPrefix); err != nil {
				return fmt.Errorf("lowering pass failed: %w", err)
			}

			fmt.Printf("lowered module %q, %d synthesized aliases:\n", mod.Name, len(library.AliasDecls))
			for _, a := range library.AliasDecls {
				fmt.Printf("  %s\n", a.Name)
			}
			return nil
		},
	}
	return cmd
}

// demoModule builds a one-function module computing x + y for two
// complex-scalar parameters at the given precision (spec §8 scenario A.1).
func demoModule(alloc *ast.Allocator, precision int) *ast.Module {
	ctx := ast.SourceContext{File: "demo.soul", Line: 1}
	c := types.Complex(precision)

	x := alloc.NewQualifiedIdent(ctx, "x")
	y := alloc.NewQualifiedIdent(ctx, "y")
	sum := alloc.NewBinaryOperator(ctx, "+", x, y, &c)
	ret := alloc.NewReturnStmt(ctx, sum, &c)
	ret.ValueType = &c

	body := alloc.NewBlock(ctx, ret)
	fn := alloc.NewFunctionDecl(ctx, "demoAdd", c, body)

	mod := ast.NewModule("demo")
	mod.Functions = append(mod.Functions, fn)
	return mod
}
