// ==============================================================================================
// FILE: evaluator/builtins.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: The built-in library (§4.4): arithmetic/trig helpers, unit conversion,
//          calculator memory, command history, structured errors, file IO, and help
//          text. Every entry is dispatched by exact source-text name, whether or not
//          the lexer gave that name a dedicated token tag.
// ==============================================================================================

package evaluator

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/Hrpavi7/SharpScript/object"
)

type builtinFn func(ip *Interpreter, env *object.Environment, args []object.Value) Result

var builtins map[string]builtinFn

func init() {
	builtins = map[string]builtinFn{
		"system.print":   biPrint,
		"system.output":  biOutput,
		"system.warning": biWarning,
		"system.error":   biError,
		"system.input":   biInput,
		"system.len":     biLen,
		"system.type":    biType,

		"system.sin":  biMath1(math.Sin),
		"system.cos":  biMath1(math.Cos),
		"system.tan":  biMath1(math.Tan),
		"system.asin": biMath1(math.Asin),
		"system.acos": biMath1(math.Acos),
		"system.atan": biMath1(math.Atan),
		"system.log":  biMath1(math.Log10),
		"system.ln":   biMath1(math.Log),
		"system.exp":  biMath1(math.Exp),
		"system.sqrt": biMath1(math.Sqrt),
		"system.pow":  biPow,

		"system.store":    biStore,
		"system.recall":   biRecall,
		"system.memclear": biMemClear,
		"system.convert":  biConvert,

		"system.history.add":   biHistoryAdd,
		"system.history.get":   biHistoryGet,
		"system.history.clear": biHistoryClear,

		"system.annotate": biAnnotate,
		"system.throw":    biThrow,
		"system.help":     biHelp,

		"file.read":  biFileRead,
		"file.write": biFileWrite,
	}
}

func argNumber(args []object.Value, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, ok := args[i].(*object.Number)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func argString(args []object.Value, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(*object.String)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// ----------------------------------------------------------------------------------------------
// system.*
// ----------------------------------------------------------------------------------------------

func biPrint(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = object.DisplayString(a)
	}
	fmt.Fprintln(ip.Out, strings.Join(parts, " "))
	return normal(NULL)
}

// biOutput implements system.output: per §4.4 its contract is identical to
// system.print (space-separated arguments, trailing newline, to stdout).
func biOutput(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	return biPrint(ip, env, args)
}

func biWarning(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	if len(args) == 0 {
		return normal(NULL)
	}
	fmt.Fprintf(ip.ErrOut, "Warning: %s\n", object.DisplayString(args[0]))
	return normal(NULL)
}

// biError implements system.error: an explicit, always-printed banner, distinct
// from system.throw which raises a catchable structured error and never prints
// (§4.4, §7).
func biError(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	msg := ""
	if len(args) > 0 {
		msg = object.DisplayString(args[0])
	}
	fmt.Fprintf(ip.ErrOut, "Error: %s\n", msg)
	return normal(NULL)
}

func biInput(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	if len(args) > 0 {
		fmt.Fprint(ip.Out, object.DisplayString(args[0]))
	}
	line, err := ip.In.ReadString('\n')
	if err != nil && line == "" {
		return normal(&object.String{Value: ""})
	}
	return normal(&object.String{Value: strings.TrimRight(line, "\r\n")})
}

func biLen(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	if len(args) != 1 {
		ip.diag("len expects exactly one argument")
		return normal(NULL)
	}
	switch v := args[0].(type) {
	case *object.String:
		return normal(&object.Number{Value: float64(len(v.Value))})
	case *object.Array:
		return normal(&object.Number{Value: float64(len(v.Elements))})
	}
	return normal(&object.Number{Value: 0})
}

func biType(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	if len(args) != 1 {
		ip.diag("type expects exactly one argument")
		return normal(NULL)
	}
	return normal(&object.String{Value: object.TypeName(args[0])})
}

// ----------------------------------------------------------------------------------------------
// math
// ----------------------------------------------------------------------------------------------

func biMath1(fn func(float64) float64) builtinFn {
	return func(ip *Interpreter, env *object.Environment, args []object.Value) Result {
		x, ok := argNumber(args, 0)
		if !ok {
			ip.diag("expected a number argument")
			return normal(NULL)
		}
		return normal(&object.Number{Value: fn(x)})
	}
}

func biPow(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	base, ok1 := argNumber(args, 0)
	exp, ok2 := argNumber(args, 1)
	if !ok1 || !ok2 {
		ip.diag("pow expects two number arguments")
		return normal(NULL)
	}
	return normal(&object.Number{Value: math.Pow(base, exp)})
}

// ----------------------------------------------------------------------------------------------
// calculator memory
// ----------------------------------------------------------------------------------------------

func biStore(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	name, ok := argString(args, 0)
	if !ok || len(args) < 2 {
		ip.diag("store expects (name, value)")
		return normal(NULL)
	}
	val := args[1]
	if !ip.Memory.Declare(name, val, false, object.TypeName(val)) {
		ip.Memory.Assign(name, val)
	}
	return normal(val)
}

func biRecall(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	name, ok := argString(args, 0)
	if !ok {
		ip.diag("recall expects a name")
		return normal(NULL)
	}
	val, found := ip.Memory.Get(name)
	if !found {
		ip.diag("no value stored under '%s'", name)
		return normal(NULL)
	}
	return normal(val)
}

func biMemClear(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	ip.Memory = object.NewEnvironment()
	return normal(NULL)
}

// convertTable holds every supported (fromUnit, toUnit) conversion (§4.4).
var convertTable = map[[2]string]func(float64) float64{
	{"m", "km"}:  func(v float64) float64 { return v / 1000 },
	{"km", "m"}:  func(v float64) float64 { return v * 1000 },
	{"m", "mi"}:  func(v float64) float64 { return v / 1609.344 },
	{"mi", "m"}:  func(v float64) float64 { return v * 1609.344 },
	{"kg", "lb"}: func(v float64) float64 { return v * 2.2046226218 },
	{"lb", "kg"}: func(v float64) float64 { return v / 2.2046226218 },
	{"c", "f"}:   func(v float64) float64 { return v*9/5 + 32 },
	{"f", "c"}:   func(v float64) float64 { return (v - 32) * 5 / 9 },
	{"c", "k"}:   func(v float64) float64 { return v + 273.15 },
	{"k", "c"}:   func(v float64) float64 { return v - 273.15 },
}

func biConvert(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	value, ok1 := argNumber(args, 0)
	from, ok2 := argString(args, 1)
	to, ok3 := argString(args, 2)
	if !ok1 || !ok2 || !ok3 {
		ip.diag("convert expects (value, fromUnit, toUnit)")
		return normal(NULL)
	}
	fn, ok := convertTable[[2]string{strings.ToLower(from), strings.ToLower(to)}]
	if !ok {
		ip.diag("no conversion defined from '%s' to '%s'", from, to)
		return normal(NULL)
	}
	return normal(&object.Number{Value: fn(value)})
}

// ----------------------------------------------------------------------------------------------
// history
// ----------------------------------------------------------------------------------------------

func biHistoryAdd(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	if len(args) != 1 {
		ip.diag("history.add expects one argument")
		return normal(NULL)
	}
	ip.History = append(ip.History, object.Clone(args[0]))
	return normal(NULL)
}

// biHistoryGet returns a fresh array of shallow clones of the stored history (§4.4).
func biHistoryGet(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	elems := make([]object.Value, len(ip.History))
	for i, h := range ip.History {
		elems[i] = object.Clone(h)
	}
	return normal(&object.Array{Elements: elems})
}

func biHistoryClear(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	ip.History = nil
	return normal(NULL)
}

// ----------------------------------------------------------------------------------------------
// errors / annotation / help
// ----------------------------------------------------------------------------------------------

func biAnnotate(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	name, ok1 := argString(args, 0)
	typeName, ok2 := argString(args, 1)
	if !ok1 || !ok2 {
		ip.diag("annotate expects (name, typeName)")
		return normal(NULL)
	}
	if !env.Annotate(name, typeName) {
		ip.diag("'%s' is not declared in the current scope", name)
	}
	return normal(NULL)
}

// biThrow implements system.throw: it raises a catchable structured error and,
// unlike system.error, never prints anything itself (§4.4, §7).
func biThrow(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	name, _ := argString(args, 0)
	message := ""
	if len(args) > 1 {
		message = object.DisplayString(args[1])
	}
	var code float64
	if len(args) > 2 {
		code, _ = argNumber(args, 2)
	}
	if name == "" {
		name = "Error"
	}
	return throwSig(&object.Error{Name: name, Message: message, Code: code})
}

func biHelp(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	topic := "user"
	if len(args) > 0 {
		topic = strings.ToLower(object.DisplayString(args[0]))
	}
	fmt.Fprintln(ip.Out, lookupDoc(topic))
	return normal(NULL)
}

// ----------------------------------------------------------------------------------------------
// file IO
// ----------------------------------------------------------------------------------------------

func biFileRead(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	path, ok := argString(args, 0)
	if !ok {
		ip.diag("file.read expects a path")
		return normal(NULL)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		ip.diag("could not read file '%s': %s", path, err)
		return normal(NULL)
	}
	return normal(&object.String{Value: string(data)})
}

func biFileWrite(ip *Interpreter, env *object.Environment, args []object.Value) Result {
	path, ok1 := argString(args, 0)
	content, ok2 := argString(args, 1)
	if !ok1 || !ok2 {
		ip.diag("file.write expects (path, content)")
		return normal(NULL)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		ip.diag("could not write file '%s': %s", path, err)
		return normal(NULL)
	}
	return normal(NULL)
}
