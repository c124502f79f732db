// ==============================================================================================
// FILE: cmd/sharp/cmd/root.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: The sharp CLI surface (spec.md §6): no args -> REPL, one script path ->
//          run it and call a zero-arg main() if declared, --help -> banner, more
//          than one positional argument -> usage error (exit 1).
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Hrpavi7/SharpScript/ast"
	"github.com/Hrpavi7/SharpScript/evaluator"
	"github.com/Hrpavi7/SharpScript/internal/diag"
	"github.com/Hrpavi7/SharpScript/lexer"
	"github.com/Hrpavi7/SharpScript/object"
	"github.com/Hrpavi7/SharpScript/parser"
	"github.com/Hrpavi7/SharpScript/repl"
)

var (
	quiet   bool
	noColor bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:     "sharp [script]",
	Short:   "SharpScript interpreter",
	Long:    "sharp runs a .sharp script file, or starts an interactive REPL when given no arguments.",
	Version: "0.1.0",
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress structured logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "echo tokens and AST for each REPL line")
}

// Execute runs the root command; its error return becomes the process exit code
// in cmd/sharp/main.go.
func Execute() error {
	return rootCmd.Execute()
}

func run(_ *cobra.Command, args []string) error {
	log := diag.New(quiet)

	if len(args) == 0 {
		repl.Start(os.Stdin, os.Stdout, repl.Options{Debug: debug, NoColor: noColor, Log: log})
		return nil
	}

	return runScript(args[0], log)
}

func runScript(path string, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script %q: %w", path, err)
	}

	l := lexer.New(string(data))
	p := parser.New(l)
	program := p.ParseProgram()
	for _, msg := range p.Errors() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}

	ip := evaluator.New(os.Stdout, os.Stderr, os.Stdin, log)
	env := object.NewEnvironment()
	ip.Eval(program, env)

	if fn, ok := env.Get("main"); ok {
		if _, isFunc := fn.(*object.Function); isFunc {
			ip.Eval(&ast.CallExpression{Name: "main"}, env)
		}
	}

	// spec.md §6: runtime diagnostics never change the exit code.
	return nil
}
