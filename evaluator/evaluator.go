// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: The tree-walking execution engine. Eval traverses the AST, maintaining the
//          environment chain and propagating the Result discriminator for non-local
//          control flow (break/continue/return/thrown errors).
// ==============================================================================================

package evaluator

import (
	"fmt"

	"github.com/Hrpavi7/SharpScript/ast"
	"github.com/Hrpavi7/SharpScript/object"
)

// Eval is the heart of the interpreter: it recursively evaluates one AST node in env.
func (ip *Interpreter) Eval(node ast.Node, env *object.Environment) Result {
	switch node := node.(type) {

	// --- Root ---
	case *ast.Program:
		return ip.evalStatements(node.Statements, env)

	// --- Statements ---
	case *ast.BlockStatement:
		return ip.evalStatements(node.Statements, env)

	case *ast.NullStatement:
		return normal(NULL)

	case *ast.ExpressionStatement:
		return ip.Eval(node.Expression, env)

	case *ast.AssignmentStatement:
		return ip.evalAssignment(node, env)

	case *ast.IncDecStatement:
		return ip.evalIncDec(node, env)

	case *ast.IfStatement:
		return ip.evalIf(node, env)

	case *ast.WhileStatement:
		return ip.evalWhile(node, env)

	case *ast.ForStatement:
		return ip.evalFor(node, env)

	case *ast.ForInStatement:
		return ip.evalForIn(node, env)

	case *ast.FunctionDeclaration:
		fn := &object.Function{Name: node.Name, Parameters: node.Parameters, Body: node.Body, Env: env}
		if !env.Declare(node.Name, fn, false, "function") {
			env.Assign(node.Name, fn)
		}
		return normal(NULL)

	case *ast.ReturnStatement:
		if node.ReturnValue == nil {
			return returnSig(NULL)
		}
		r := ip.Eval(node.ReturnValue, env)
		if r.propagating() {
			return r
		}
		return returnSig(r.Value)

	case *ast.BreakStatement:
		return breakSig()

	case *ast.ContinueStatement:
		return continueSig()

	case *ast.NamespaceStatement:
		return ip.evalNamespace(node, env)

	case *ast.EnumStatement:
		return ip.evalEnum(node, env)

	case *ast.ClassStatement:
		return ip.evalClass(node, env)

	case *ast.MatchStatement:
		return ip.evalMatch(node, env)

	case *ast.TryStatement:
		return ip.evalTry(node, env)

	// --- Expressions ---
	case *ast.Identifier:
		return ip.evalIdentifier(node, env)

	case *ast.NumberLiteral:
		return normal(&object.Number{Value: node.Value})

	case *ast.StringLiteral:
		return normal(&object.String{Value: node.Value})

	case *ast.BooleanLiteral:
		return normal(nativeBool(node.Value))

	case *ast.NullLiteral:
		return normal(NULL)

	case *ast.BinaryExpression:
		return ip.evalBinary(node, env)

	case *ast.UnaryExpression:
		return ip.evalUnary(node, env)

	case *ast.IndexExpression:
		return ip.evalIndex(node, env)

	case *ast.FunctionLiteral:
		return normal(&object.Function{Parameters: node.Parameters, Body: node.Body, Env: env})

	case *ast.CallExpression:
		return ip.evalCall(node, env)

	case *ast.ArrayLiteral:
		elems, r := ip.evalExpressionList(node.Elements, env)
		if r.propagating() {
			return r
		}
		return normal(&object.Array{Elements: elems})

	case *ast.MapLiteral:
		return ip.evalMapLiteral(node, env)
	}

	return normal(NULL)
}

// diag emits an uncatchable runtime diagnostic to the error stream. Callers
// degrade their expression result to NULL after calling this (§7: diagnostics
// are distinct from catchable thrown errors).
func (ip *Interpreter) diag(format string, args ...interface{}) {
	fmt.Fprintf(ip.ErrOut, "Error: %s\n", fmt.Sprintf(format, args...))
}

func (ip *Interpreter) evalStatements(stmts []ast.Statement, env *object.Environment) Result {
	result := normal(NULL)
	for _, s := range stmts {
		result = ip.Eval(s, env)
		if result.propagating() {
			return result
		}
	}
	return result
}

// ----------------------------------------------------------------------------------------------
// Assignment / declaration
// ----------------------------------------------------------------------------------------------

func (ip *Interpreter) evalAssignment(node *ast.AssignmentStatement, env *object.Environment) Result {
	rhs := ip.Eval(node.Value, env)
	if rhs.propagating() {
		return rhs
	}
	value := rhs.Value

	switch node.Decl {
	case ast.DeclInsert, ast.DeclConst:
		typeName := object.TypeName(value)
		if node.TypeName != nil && *node.TypeName != typeName {
			ip.diag("type mismatch: '%s' declared as %s but assigned %s", node.Name, *node.TypeName, typeName)
		}
		declaredType := typeName
		if node.TypeName != nil {
			declaredType = *node.TypeName
		}
		if !env.Declare(node.Name, value, node.Decl == ast.DeclConst, declaredType) {
			ip.diag("'%s' is already declared", node.Name)
		}
		return normal(value)
	}

	if node.Operator != "=" {
		old, ok := env.Get(node.Name)
		if !ok {
			ip.diag("identifier not found: %s", node.Name)
			return normal(NULL)
		}
		combined, ok2 := applyCompound(node.Operator, old, value)
		if !ok2 {
			ip.diag("unsupported operand types for '%s': %s and %s", node.Operator, object.TypeName(old), object.TypeName(value))
			return normal(NULL)
		}
		value = combined
	}

	ok, wasConst := env.Assign(node.Name, value)
	if !ok {
		ip.diag("identifier not found: %s", node.Name)
		return normal(NULL)
	}
	if wasConst {
		ip.diag("cannot assign to const '%s'", node.Name)
		return normal(NULL)
	}
	return normal(value)
}

func applyCompound(op string, old, val object.Value) (object.Value, bool) {
	switch op {
	case "+=":
		if os, ok := old.(*object.String); ok {
			return &object.String{Value: os.Value + object.DisplayString(val)}, true
		}
		on, ok1 := old.(*object.Number)
		vn, ok2 := val.(*object.Number)
		if ok1 && ok2 {
			return &object.Number{Value: on.Value + vn.Value}, true
		}
	case "-=", "*=", "/=", "%=":
		on, ok1 := old.(*object.Number)
		vn, ok2 := val.(*object.Number)
		if !ok1 || !ok2 {
			return nil, false
		}
		switch op {
		case "-=":
			return &object.Number{Value: on.Value - vn.Value}, true
		case "*=":
			return &object.Number{Value: on.Value * vn.Value}, true
		case "/=":
			if vn.Value == 0 {
				return nil, false
			}
			return &object.Number{Value: on.Value / vn.Value}, true
		case "%=":
			if vn.Value == 0 {
				return nil, false
			}
			return &object.Number{Value: float64(int64(on.Value) % int64(vn.Value))}, true
		}
	}
	return nil, false
}

func (ip *Interpreter) evalIncDec(node *ast.IncDecStatement, env *object.Environment) Result {
	old, ok := env.Get(node.Name)
	if !ok {
		ip.diag("identifier not found: %s", node.Name)
		return normal(NULL)
	}
	num, ok := old.(*object.Number)
	if !ok {
		ip.diag("'%s' is not a number", node.Name)
		return normal(NULL)
	}
	delta := 1.0
	if node.Operator == "--" {
		delta = -1.0
	}
	next := &object.Number{Value: num.Value + delta}
	env.Assign(node.Name, next)
	return normal(next)
}

// ----------------------------------------------------------------------------------------------
// Control flow
// ----------------------------------------------------------------------------------------------

func (ip *Interpreter) evalIf(node *ast.IfStatement, env *object.Environment) Result {
	cond := ip.Eval(node.Condition, env)
	if cond.propagating() {
		return cond
	}
	if object.Truthy(cond.Value) {
		return ip.Eval(node.Consequence, object.NewEnclosedEnvironment(env))
	}
	if node.Alternative != nil {
		return ip.Eval(node.Alternative, object.NewEnclosedEnvironment(env))
	}
	return normal(NULL)
}

func (ip *Interpreter) evalWhile(node *ast.WhileStatement, env *object.Environment) Result {
	for {
		cond := ip.Eval(node.Condition, env)
		if cond.propagating() {
			return cond
		}
		if !object.Truthy(cond.Value) {
			break
		}
		r := ip.Eval(node.Body, object.NewEnclosedEnvironment(env))
		switch r.Signal {
		case SigBreak:
			return normal(NULL)
		case SigContinue, SigNone:
			// keep looping
		default:
			return r
		}
	}
	return normal(NULL)
}

func (ip *Interpreter) evalFor(node *ast.ForStatement, env *object.Environment) Result {
	loopEnv := object.NewEnclosedEnvironment(env)
	if node.Init != nil {
		r := ip.Eval(node.Init, loopEnv)
		if r.propagating() {
			return r
		}
	}
	for {
		if node.Condition != nil {
			cond := ip.Eval(node.Condition, loopEnv)
			if cond.propagating() {
				return cond
			}
			if !object.Truthy(cond.Value) {
				break
			}
		}
		r := ip.Eval(node.Body, object.NewEnclosedEnvironment(loopEnv))
		switch r.Signal {
		case SigBreak:
			return normal(NULL)
		case SigContinue, SigNone:
			// fall through to post-clause
		default:
			return r
		}
		if node.Post != nil {
			pr := ip.Eval(node.Post, loopEnv)
			if pr.propagating() {
				return pr
			}
		}
	}
	return normal(NULL)
}

func (ip *Interpreter) evalForIn(node *ast.ForInStatement, env *object.Environment) Result {
	it := ip.Eval(node.Iterable, env)
	if it.propagating() {
		return it
	}

	switch coll := it.Value.(type) {
	case *object.Array:
		for _, elem := range coll.Elements {
			iterEnv := object.NewEnclosedEnvironment(env)
			iterEnv.Declare(node.Name, object.Clone(elem), false, object.TypeName(elem))
			r := ip.Eval(node.Body, iterEnv)
			switch r.Signal {
			case SigBreak:
				return normal(NULL)
			case SigContinue, SigNone:
			default:
				return r
			}
		}
	case *object.Map:
		for i, key := range coll.Keys {
			pair := object.NewMap()
			pair.Set("key", &object.String{Value: key})
			pair.Set("value", object.Clone(coll.Values[i]))
			iterEnv := object.NewEnclosedEnvironment(env)
			iterEnv.Declare(node.Name, pair, false, "map")
			r := ip.Eval(node.Body, iterEnv)
			switch r.Signal {
			case SigBreak:
				return normal(NULL)
			case SigContinue, SigNone:
			default:
				return r
			}
		}
	default:
		ip.diag("value of type %s is not iterable", object.TypeName(it.Value))
	}
	return normal(NULL)
}

// ----------------------------------------------------------------------------------------------
// Namespace / enum / class
// ----------------------------------------------------------------------------------------------

func (ip *Interpreter) evalNamespace(node *ast.NamespaceStatement, env *object.Environment) Result {
	nsEnv := object.NewEnclosedEnvironment(env)
	r := ip.Eval(node.Body, nsEnv)
	if r.propagating() {
		return r
	}
	for _, name := range nsEnv.Names() {
		val, _ := nsEnv.Get(name)
		isConst, _ := nsEnv.ConstOf(name)
		typeName, _ := nsEnv.TypeNameOf(name)
		qualified := node.Name + "." + name
		if !env.Declare(qualified, val, isConst, typeName) {
			env.Assign(qualified, val)
		}
	}
	ns := &object.Namespace{Name: node.Name, Env: nsEnv}
	if !env.Declare(node.Name, ns, true, "namespace") {
		env.Assign(node.Name, ns)
	}
	return normal(NULL)
}

func (ip *Interpreter) evalEnum(node *ast.EnumStatement, env *object.Environment) Result {
	enumEnv := object.NewEnclosedEnvironment(env)
	autoValue := 0.0
	for _, member := range node.Members {
		var val object.Value
		if member.Value != nil {
			r := ip.Eval(member.Value, enumEnv)
			if r.propagating() {
				return r
			}
			val = r.Value
			if n, ok := val.(*object.Number); ok {
				autoValue = n.Value + 1
			}
		} else {
			val = &object.Number{Value: autoValue}
			autoValue++
		}
		qualified := node.Name + "." + member.Name
		if !env.Declare(qualified, val, true, object.TypeName(val)) {
			ip.diag("'%s' is already declared", qualified)
		}
	}
	en := &object.Enum{Name: node.Name, Env: enumEnv}
	if !env.Declare(node.Name, en, true, "enum") {
		env.Assign(node.Name, en)
	}
	return normal(NULL)
}

// evalClass evaluates a class/struct body as an ordinary block for its side effects,
// then records a marker Class value. No instance is produced: there is no `new`
// dispatch, field layout, or inheritance resolution (open question, §9).
func (ip *Interpreter) evalClass(node *ast.ClassStatement, env *object.Environment) Result {
	r := ip.Eval(node.Body, env)
	if r.propagating() {
		return r
	}
	base := ""
	if node.Base != nil {
		base = *node.Base
	}
	cls := &object.Class{Name: node.Name, Base: base, Env: env}
	if !env.Declare(node.Name, cls, true, "class") {
		env.Assign(node.Name, cls)
	}
	return normal(NULL)
}

// ----------------------------------------------------------------------------------------------
// match / try
// ----------------------------------------------------------------------------------------------

func (ip *Interpreter) evalMatch(node *ast.MatchStatement, env *object.Environment) Result {
	scrutinee := ip.Eval(node.Scrutinee, env)
	if scrutinee.propagating() {
		return scrutinee
	}
	for _, c := range node.Cases {
		pattern := ip.Eval(c.Pattern, env)
		if pattern.propagating() {
			return pattern
		}
		if valuesEqual(scrutinee.Value, pattern.Value) {
			return ip.Eval(c.Body, object.NewEnclosedEnvironment(env))
		}
	}
	if node.Default != nil {
		return ip.Eval(node.Default, object.NewEnclosedEnvironment(env))
	}
	return normal(NULL)
}

func (ip *Interpreter) evalTry(node *ast.TryStatement, env *object.Environment) Result {
	tryEnv := object.NewEnclosedEnvironment(env)
	result := ip.Eval(node.TryBlock, tryEnv)

	if result.Signal == SigThrow && node.CatchBlock != nil {
		catchEnv := object.NewEnclosedEnvironment(env)
		if node.CatchName != nil {
			catchEnv.Declare(*node.CatchName, result.Value, false, object.TypeName(result.Value))
		}
		result = ip.Eval(node.CatchBlock, catchEnv)
	}

	if node.FinallyBlock != nil {
		finEnv := object.NewEnclosedEnvironment(env)
		finResult := ip.Eval(node.FinallyBlock, finEnv)
		if finResult.propagating() {
			return finResult
		}
	}
	return result
}

// ----------------------------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------------------------

func (ip *Interpreter) evalIdentifier(node *ast.Identifier, env *object.Environment) Result {
	if val, ok := env.Get(node.Value); ok {
		return normal(val)
	}
	ip.diag("identifier not found: %s", node.Value)
	return normal(NULL)
}

func (ip *Interpreter) evalBinary(node *ast.BinaryExpression, env *object.Environment) Result {
	left := ip.Eval(node.Left, env)
	if left.propagating() {
		return left
	}

	// §4.3: && and || always evaluate both operands (no short-circuit); only the
	// combination of their truthiness short-circuits. Side effects on the right
	// follow left-to-right evaluation regardless of the left operand's value.
	if node.Operator == "&&" {
		right := ip.Eval(node.Right, env)
		if right.propagating() {
			return right
		}
		return normal(nativeBool(object.Truthy(left.Value) && object.Truthy(right.Value)))
	}
	if node.Operator == "||" {
		right := ip.Eval(node.Right, env)
		if right.propagating() {
			return right
		}
		return normal(nativeBool(object.Truthy(left.Value) || object.Truthy(right.Value)))
	}

	right := ip.Eval(node.Right, env)
	if right.propagating() {
		return right
	}
	return normal(ip.applyBinary(node.Operator, left.Value, right.Value))
}

func (ip *Interpreter) applyBinary(op string, left, right object.Value) object.Value {
	if op == "==" {
		return nativeBool(valuesEqual(left, right))
	}
	if op == "!=" {
		return nativeBool(!valuesEqual(left, right))
	}

	if op == "+" {
		if ls, ok := left.(*object.String); ok {
			return &object.String{Value: ls.Value + object.DisplayString(right)}
		}
		if rs, ok := right.(*object.String); ok {
			return &object.String{Value: object.DisplayString(left) + rs.Value}
		}
	}

	ln, lok := left.(*object.Number)
	rn, rok := right.(*object.Number)
	if !lok || !rok {
		ip.diag("unsupported operand types for '%s': %s and %s", op, object.TypeName(left), object.TypeName(right))
		return NULL
	}
	switch op {
	case "+":
		return &object.Number{Value: ln.Value + rn.Value}
	case "-":
		return &object.Number{Value: ln.Value - rn.Value}
	case "*":
		return &object.Number{Value: ln.Value * rn.Value}
	case "/":
		if rn.Value == 0 {
			ip.diag("division by zero")
			return NULL
		}
		return &object.Number{Value: ln.Value / rn.Value}
	case "%":
		if rn.Value == 0 {
			ip.diag("division by zero")
			return NULL
		}
		return &object.Number{Value: float64(int64(ln.Value) % int64(rn.Value))}
	case "<":
		return nativeBool(ln.Value < rn.Value)
	case "<=":
		return nativeBool(ln.Value <= rn.Value)
	case ">":
		return nativeBool(ln.Value > rn.Value)
	case ">=":
		return nativeBool(ln.Value >= rn.Value)
	}
	ip.diag("unknown operator: %s", op)
	return NULL
}

func valuesEqual(a, b object.Value) bool {
	switch av := a.(type) {
	case *object.Number:
		bv, ok := b.(*object.Number)
		return ok && av.Value == bv.Value
	case *object.String:
		bv, ok := b.(*object.String)
		return ok && av.Value == bv.Value
	case *object.Boolean:
		bv, ok := b.(*object.Boolean)
		return ok && av.Value == bv.Value
	case *object.Null:
		_, ok := b.(*object.Null)
		return ok
	default:
		return a == b
	}
}

func (ip *Interpreter) evalUnary(node *ast.UnaryExpression, env *object.Environment) Result {
	right := ip.Eval(node.Right, env)
	if right.propagating() {
		return right
	}
	switch node.Operator {
	case "!":
		return normal(nativeBool(!object.Truthy(right.Value)))
	case "-":
		n, ok := right.Value.(*object.Number)
		if !ok {
			ip.diag("unsupported operand type for unary '-': %s", object.TypeName(right.Value))
			return normal(NULL)
		}
		return normal(&object.Number{Value: -n.Value})
	}
	ip.diag("unknown operator: %s", node.Operator)
	return normal(NULL)
}

func (ip *Interpreter) evalIndex(node *ast.IndexExpression, env *object.Environment) Result {
	left := ip.Eval(node.Left, env)
	if left.propagating() {
		return left
	}
	index := ip.Eval(node.Index, env)
	if index.propagating() {
		return index
	}

	switch coll := left.Value.(type) {
	case *object.Array:
		n, ok := index.Value.(*object.Number)
		if !ok {
			ip.diag("array index must be a number")
			return normal(NULL)
		}
		i := int(n.Value)
		if i < 0 || i >= len(coll.Elements) {
			ip.diag("array index out of range: %d", i)
			return normal(NULL)
		}
		return normal(coll.Elements[i])
	case *object.Map:
		key := object.DisplayString(index.Value)
		val, ok := coll.Get(key)
		if !ok {
			return normal(NULL)
		}
		return normal(val)
	}
	ip.diag("value of type %s is not indexable", object.TypeName(left.Value))
	return normal(NULL)
}

func (ip *Interpreter) evalMapLiteral(node *ast.MapLiteral, env *object.Environment) Result {
	m := object.NewMap()
	for i, keyExpr := range node.Keys {
		k := ip.Eval(keyExpr, env)
		if k.propagating() {
			return k
		}
		v := ip.Eval(node.Values[i], env)
		if v.propagating() {
			return v
		}
		m.Set(object.DisplayString(k.Value), v.Value)
	}
	return normal(m)
}

func (ip *Interpreter) evalExpressionList(exps []ast.Expression, env *object.Environment) ([]object.Value, Result) {
	var out []object.Value
	for _, e := range exps {
		r := ip.Eval(e, env)
		if r.propagating() {
			return nil, r
		}
		out = append(out, r.Value)
	}
	return out, normal(NULL)
}

// ----------------------------------------------------------------------------------------------
// Calls
// ----------------------------------------------------------------------------------------------

func (ip *Interpreter) evalCall(node *ast.CallExpression, env *object.Environment) Result {
	args, r := ip.evalExpressionList(node.Arguments, env)
	if r.propagating() {
		return r
	}

	if builtin, ok := builtins[node.Name]; ok {
		return builtin(ip, env, args)
	}

	callee, ok := env.Get(node.Name)
	if !ok {
		ip.diag("identifier not found: %s", node.Name)
		return normal(NULL)
	}
	fn, ok := callee.(*object.Function)
	if !ok {
		ip.diag("'%s' is not a function", node.Name)
		return normal(NULL)
	}
	return ip.applyFunction(fn, args)
}

func (ip *Interpreter) applyFunction(fn *object.Function, args []object.Value) Result {
	callEnv := object.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		var val object.Value
		switch {
		case i < len(args):
			val = args[i]
		case param.Default != nil:
			r := ip.Eval(param.Default, callEnv)
			if r.propagating() {
				return r
			}
			val = r.Value
		default:
			val = NULL
		}
		callEnv.Declare(param.Name, val, false, object.TypeName(val))
	}

	result := ip.Eval(fn.Body, callEnv)
	switch result.Signal {
	case SigReturn:
		return normal(result.Value)
	case SigThrow:
		return result
	case SigBreak, SigContinue:
		ip.diag("break/continue used outside of a loop")
		return normal(NULL)
	default:
		return normal(result.Value)
	}
}
