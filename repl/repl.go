// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop. Connects an input stream to the SharpScript
//          pipeline (Lexer -> Parser -> Interpreter) and keeps the session's
//          environment alive across lines, per SPEC_FULL.md's REPL call shape.
// ==============================================================================================

package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/Hrpavi7/SharpScript/evaluator"
	"github.com/Hrpavi7/SharpScript/lexer"
	"github.com/Hrpavi7/SharpScript/object"
	"github.com/Hrpavi7/SharpScript/parser"
	"github.com/Hrpavi7/SharpScript/token"
)

const (
	prompt = ">> "
	logo   = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  ____  _                       ____            _   ┃
┃ / ___|| |__   __ _ _ __ _ __  / ___|  ___ _ __ | |_ ┃
┃ \___ \| '_ \ / _` + "`" + ` | '__| '_ \ \___ \ / __| '__|| __|┃
┃  ___) | | | | (_| | |  | |_) | ___) | (__| |   | |_ ┃
┃ |____/|_| |_|\__,_|_|  | .__/ |____/ \___|_|    \__|┃
┃                        |_|                          ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

// Options configures a REPL session. Color is disabled when NoColor is set
// (the CLI's --no-color flag) or when Out is not a terminal; fatih/color
// handles that downgrade on its own once NoColor is wired to color.NoColor.
type Options struct {
	Debug   bool
	NoColor bool
	Log     *zap.Logger
}

// Start launches the Read-Eval-Print Loop, reading lines from in and writing
// prompts/results/diagnostics to out. The environment and Interpreter persist
// for the lifetime of the session so that declarations, calculator memory,
// and history survive across lines.
func Start(in io.Reader, out io.Writer, opts Options) {
	if opts.NoColor {
		color.NoColor = true
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	scanner := bufio.NewScanner(in)
	ip := evaluator.New(out, out, in, log)
	env := object.NewEnvironment()
	debugMode := opts.Debug

	fmt.Fprint(out, logo)
	printHelp(out)

	for {
		color.New(color.FgCyan).Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if !runMetaCommand(line, out, ip, &env, &debugMode) {
				return
			}
			continue
		}

		if debugMode {
			printTokens(out, line)
		}

		l := lexer.New(line)
		p := parser.New(l)
		program := p.ParseProgram()

		if len(p.Errors()) != 0 {
			printParserErrors(out, p.Errors())
			continue
		}

		if debugMode {
			printAST(out, program)
		}

		log.Debug("eval line", zap.String("source", line))
		result := ip.Eval(program, env)
		printResult(out, result)
	}
}

// runMetaCommand handles the REPL-only dot-commands (SPEC_FULL.md "Supplemented
// features"). It returns false when the session should end.
func runMetaCommand(line string, out io.Writer, ip *evaluator.Interpreter, env **object.Environment, debugMode *bool) bool {
	switch line {
	case ".exit":
		color.New(color.FgYellow).Fprintln(out, "Goodbye!")
		return false
	case ".clear":
		*env = object.NewEnvironment()
		color.New(color.FgGreen).Fprintln(out, "Environment cleared.")
	case ".debug":
		*debugMode = !*debugMode
		status := "DISABLED"
		if *debugMode {
			status = "ENABLED"
		}
		color.New(color.FgHiBlack).Fprintf(out, "Debug mode %s\n", status)
	case ".help":
		printHelp(out)
	default:
		color.New(color.FgRed).Fprintf(out, "Unknown command: %s. Type .help for info.\n", line)
	}
	return true
}

func printHelp(out io.Writer) {
	gray := color.New(color.FgHiBlack)
	gray.Fprintln(out, "Commands:")
	gray.Fprintln(out, "  .exit   Quit the REPL")
	gray.Fprintln(out, "  .clear  Reset the session environment")
	gray.Fprintln(out, "  .debug  Toggle token/AST tracing")
	gray.Fprintln(out, "  .help   Show this message")
	fmt.Fprintln(out)
}

func printTokens(out io.Writer, line string) {
	gray := color.New(color.FgHiBlack)
	gray.Fprintln(out, "┌── tokens ──")
	l := lexer.New(line)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		fmt.Fprintf(out, "│ %-15s : %s\n", tok.Type, tok.Literal)
	}
	gray.Fprintln(out, "└────────────")
}

func printAST(out io.Writer, program fmt.Stringer) {
	gray := color.New(color.FgHiBlack)
	gray.Fprintln(out, "┌── ast ──")
	if str := program.String(); str != "" {
		fmt.Fprint(out, str)
	}
	gray.Fprintln(out, "└─────────")
}

func printParserErrors(out io.Writer, errors []string) {
	color.New(color.FgRed, color.Bold).Fprintln(out, "Parse errors:")
	for _, msg := range errors {
		color.New(color.FgRed).Fprintf(out, "  - %s\n", msg)
	}
}

// printResult renders a line's evaluation result the way the REPL's own built-ins
// do not: system.print/output already write to out directly, so printResult only
// echoes the value of the line's last statement - a bare expression's value, or
// the value an assignment or declaration stored - and stays silent for null,
// matching a statement that produced no printable result.
func printResult(out io.Writer, result evaluator.Result) {
	if result.Signal == evaluator.SigThrow {
		if errVal, ok := result.Value.(*object.Error); ok {
			color.New(color.FgRed, color.Bold).Fprintf(out, "uncaught %s\n", errVal.Inspect())
			return
		}
	}
	v := result.Value
	if v == nil || v.Type() == object.NULL_VALUE {
		return
	}

	str := v.Inspect()
	switch val := v.(type) {
	case *object.Error:
		color.New(color.FgRed).Fprintln(out, val.Inspect())
	case *object.Number:
		color.New(color.FgYellow).Fprintln(out, str)
	case *object.Boolean:
		c := color.FgGreen
		if !val.Value {
			c = color.FgRed
		}
		color.New(c).Fprintln(out, str)
	case *object.String:
		color.New(color.FgGreen).Fprintln(out, str)
	case *object.Function:
		color.New(color.FgMagenta).Fprintln(out, str)
	case *object.Array, *object.Map:
		color.New(color.FgBlue).Fprintln(out, str)
	case *object.Namespace, *object.Class, *object.Enum:
		color.New(color.FgCyan).Fprintln(out, str)
	default:
		fmt.Fprintln(out, str)
	}
}
