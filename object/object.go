// ==============================================================================================
// FILE: object/object.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The runtime value model for SharpScript (§3 of the language spec): every
//          case the Evaluator can produce implements Value. Control-flow sentinels
//          (break/continue/return/thrown) are NOT modeled here - per the spec's own
//          design notes, they are lifted into the Evaluator's return discriminator
//          instead of being smuggled through Value, so that a Value handed back to
//          calling code is always a real value.
// ==============================================================================================

package object

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Hrpavi7/SharpScript/ast"
)

// ValueType names the runtime type of a Value, used by system.type and by the
// type-annotation check on declarations.
type ValueType string

const (
	NUMBER_VALUE    ValueType = "number"
	STRING_VALUE    ValueType = "string"
	BOOLEAN_VALUE   ValueType = "boolean"
	NULL_VALUE      ValueType = "null"
	FUNCTION_VALUE  ValueType = "function"
	ARRAY_VALUE     ValueType = "array"
	MAP_VALUE       ValueType = "map"
	NAMESPACE_VALUE ValueType = "namespace"
	CLASS_VALUE     ValueType = "class"
	ENUM_VALUE      ValueType = "enum"
	ERROR_VALUE     ValueType = "error"
	UNKNOWN_VALUE   ValueType = "unknown"
)

// Value is the interface every runtime object satisfies.
type Value interface {
	Type() ValueType
	Inspect() string
}

// Clone produces a value independent of its source: deep for strings/arrays/maps,
// shallow (by reference) for functions/namespaces/classes/enums, whose identity is
// their captured environment.
func Clone(v Value) Value {
	switch val := v.(type) {
	case *Number:
		return &Number{Value: val.Value}
	case *String:
		return &String{Value: val.Value}
	case *Boolean:
		return &Boolean{Value: val.Value}
	case *Null:
		return &Null{}
	case *Array:
		elems := make([]Value, len(val.Elements))
		for i, e := range val.Elements {
			elems[i] = Clone(e)
		}
		return &Array{Elements: elems}
	case *Map:
		keys := make([]string, len(val.Keys))
		copy(keys, val.Keys)
		vals := make([]Value, len(val.Values))
		for i, e := range val.Values {
			vals[i] = Clone(e)
		}
		return &Map{Keys: keys, Values: vals}
	case *Error:
		cp := *val
		return &cp
	default:
		return v
	}
}

// Number is SharpScript's sole numeric type: a double (§3).
type Number struct{ Value float64 }

func (n *Number) Type() ValueType { return NUMBER_VALUE }

// Inspect prints integral numbers without a decimal point and everything else in
// general format, matching §4.4's print/output contract.
func (n *Number) Inspect() string {
	if n.Value == float64(int64(n.Value)) {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

type String struct{ Value string }

func (s *String) Type() ValueType { return STRING_VALUE }
func (s *String) Inspect() string { return s.Value }

type Boolean struct{ Value bool }

func (b *Boolean) Type() ValueType { return BOOLEAN_VALUE }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type Null struct{}

func (n *Null) Type() ValueType { return NULL_VALUE }
func (n *Null) Inspect() string { return "null" }

// Function is a closure: the declaring AST node plus the environment captured at
// definition time (§3, §4.3 - static scoping).
type Function struct {
	Name       string // empty for lambdas
	Parameters []ast.Parameter
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ValueType { return FUNCTION_VALUE }
func (f *Function) Inspect() string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.Name
	}
	return fmt.Sprintf("function(%s)", strings.Join(names, ", "))
}

type Array struct{ Elements []Value }

func (a *Array) Type() ValueType { return ARRAY_VALUE }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map stores parallel string keys and Values in insertion order (§3): order matters
// because for-in over a map iterates "in declaration order".
type Map struct {
	Keys   []string
	Values []Value
}

func NewMap() *Map { return &Map{} }

func (m *Map) Get(key string) (Value, bool) {
	for i, k := range m.Keys {
		if k == key {
			return m.Values[i], true
		}
	}
	return nil, false
}

// Set overwrites an existing key in place or appends a new one.
func (m *Map) Set(key string, val Value) {
	for i, k := range m.Keys {
		if k == key {
			m.Values[i] = val
			return
		}
	}
	m.Keys = append(m.Keys, key)
	m.Values = append(m.Values, val)
}

func (m *Map) Type() ValueType { return MAP_VALUE }
func (m *Map) Inspect() string {
	parts := make([]string, len(m.Keys))
	for i, k := range m.Keys {
		parts[i] = fmt.Sprintf("%s: %s", k, m.Values[i].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Namespace wraps the environment produced by evaluating a namespace body, kept
// around after its members are re-published into the parent frame (§4.3).
type Namespace struct {
	Name string
	Env  *Environment
}

func (n *Namespace) Type() ValueType { return NAMESPACE_VALUE }
func (n *Namespace) Inspect() string { return "namespace " + n.Name }

// Class is produced by both `class` and `struct` declarations; the evaluator does
// not instantiate it (see the language spec's open questions on class/struct).
type Class struct {
	Name string
	Base string
	Env  *Environment
}

func (c *Class) Type() ValueType { return CLASS_VALUE }
func (c *Class) Inspect() string { return "class " + c.Name }

type Enum struct {
	Name string
	Env  *Environment
}

func (e *Enum) Type() ValueType { return ENUM_VALUE }
func (e *Enum) Inspect() string { return "enum " + e.Name }

// Error is a structured error raised by system.throw and caught by try/catch (§3,
// §7). Its display form is "<Name: Message>" per §8.
type Error struct {
	Name    string
	Message string
	Code    float64
}

func (e *Error) Type() ValueType { return ERROR_VALUE }
func (e *Error) Inspect() string { return fmt.Sprintf("<%s: %s>", e.Name, e.Message) }

// TypeName returns the declared-type-annotation name for v, drawn from the closed
// set number|string|boolean|null|function|array|map|unknown (§4.3).
func TypeName(v Value) string {
	switch v.(type) {
	case *Number:
		return "number"
	case *String:
		return "string"
	case *Boolean:
		return "boolean"
	case *Null, nil:
		return "null"
	case *Function:
		return "function"
	case *Array:
		return "array"
	case *Map:
		return "map"
	default:
		return "unknown"
	}
}

// Truthy implements the language's truthiness rule (§4.3).
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case *Null:
		return false
	case *Boolean:
		return val.Value
	case *Number:
		return val.Value != 0
	case *String:
		return val.Value != ""
	default:
		return true
	}
}

// DisplayString renders v the way '+' does when concatenating with a string
// operand (§4.3): numbers in general format, booleans as true/false, null as null.
func DisplayString(v Value) string {
	switch val := v.(type) {
	case *String:
		return val.Value
	case *Number:
		return val.Inspect()
	case *Boolean:
		return val.Inspect()
	case *Null, nil:
		return "null"
	default:
		return val.Inspect()
	}
}
