// ==============================================================================================
// FILE: evaluator/evaluator_test.go
// ==============================================================================================
// PURPOSE: End-to-end and unit coverage of the evaluator against the language
//          spec's testable properties and scenarios (§8).
// ==============================================================================================

package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hrpavi7/SharpScript/lexer"
	"github.com/Hrpavi7/SharpScript/object"
	"github.com/Hrpavi7/SharpScript/parser"
)

// run executes source against a fresh Interpreter and environment, returning
// everything written to stdout and stderr (both go to one buffer), one line per
// system.print/output call or diagnostic.
func run(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	program := p.ParseProgram()
	require.Emptyf(t, p.Errors(), "parser errors: %v", p.Errors())

	var out bytes.Buffer
	ip := New(&out, &out, strings.NewReader(""), nil)
	env := object.NewEnvironment()
	ip.Eval(program, env)
	return out.String()
}

func TestArithmeticAndStringConcatenation(t *testing.T) {
	out := run(t, `&insert x = 2; &insert y = 3; system.output(x + y); system.output("sum=" + (x+y));`)
	assert.Equal(t, "5\nsum=5\n", out)
}

func TestFunctionWithDefaultAndClosure(t *testing.T) {
	src := `
function make(k) { function add(x, y = k) { return x + y; } return add; }
&insert f = make(10);
system.output(f(1));
system.output(f(1, 2));
`
	out := run(t, src)
	assert.Equal(t, "11\n3\n", out)
}

func TestNamespaceQualificationAndEnum(t *testing.T) {
	src := `
namespace M { &insert b = 10; function show(void) { system.output(b); } }
enum C { R = 1, G, B = 4 }
M.show();
system.output(M.b);
system.output(C.R);
system.output(C.G);
system.output(C.B);
`
	out := run(t, src)
	assert.Equal(t, "10\n10\n1\n2\n4\n", out)
}

func TestForInOverArrayWithBreak(t *testing.T) {
	out := run(t, `for (x in [1,2,3,4]) { if (x == 3) break; system.output(x); }`)
	assert.Equal(t, "1\n2\n", out)
}

func TestStructuredErrorWithFinally(t *testing.T) {
	src := `
try {
    system.throw("Oops", "bad");
    system.output("unreached");
} catch (e) {
    system.output(e);
} finally {
    system.output("done");
}
`
	out := run(t, src)
	assert.Equal(t, "<Oops: bad>\ndone\n", out)
}

func TestMatchWithDefault(t *testing.T) {
	src := `&insert k = 7; match (k) { case 1: system.output("one"); case 7: system.output("seven"); default: system.output("other"); }`
	out := run(t, src)
	assert.Equal(t, "seven\n", out)
}

func TestConstViolationLeavesValueUnchanged(t *testing.T) {
	var out bytes.Buffer
	l := lexer.New(`const x = 1; x = 2;`)
	p := parser.New(l)
	program := p.ParseProgram()
	ip := New(&out, &out, strings.NewReader(""), nil)
	env := object.NewEnvironment()
	ip.Eval(program, env)

	v, _ := env.Get("x")
	assert.Equal(t, float64(1), v.(*object.Number).Value)
	assert.Contains(t, out.String(), "Error:")
}

func TestRedeclarationInSameFrameLeavesOriginalBinding(t *testing.T) {
	var out bytes.Buffer
	l := lexer.New(`&insert x = 1; &insert x = 2;`)
	p := parser.New(l)
	program := p.ParseProgram()
	ip := New(&out, &out, strings.NewReader(""), nil)
	env := object.NewEnvironment()
	ip.Eval(program, env)

	v, _ := env.Get("x")
	assert.Equal(t, float64(1), v.(*object.Number).Value)
}

func TestStaticScopingUsesDefinitionSiteClosure(t *testing.T) {
	src := `
&insert k = "outer";
function make(void) {
    &insert k = "inner";
    function inner(void) { return k; }
    return inner;
}
&insert f = make();
system.output(f());
`
	out := run(t, src)
	assert.Equal(t, "inner\n", out)
}

func TestConvertRoundTrips(t *testing.T) {
	back := convertTable[[2]string{"km", "m"}](convertTable[[2]string{"m", "km"}](1000))
	assert.InDelta(t, 1000, back, 1e-6)

	back2 := convertTable[[2]string{"f", "c"}](convertTable[[2]string{"c", "f"}](37))
	assert.InDelta(t, 37, back2, 1e-6)
}

func TestThrowDoesNotPrintButErrorDoes(t *testing.T) {
	var out bytes.Buffer
	l := lexer.New(`try { system.throw("E", "m"); } catch (e) {}`)
	p := parser.New(l)
	program := p.ParseProgram()
	ip := New(&out, &out, strings.NewReader(""), nil)
	env := object.NewEnvironment()
	ip.Eval(program, env)
	assert.Empty(t, out.String())

	var out2 bytes.Buffer
	l2 := lexer.New(`system.error("boom");`)
	p2 := parser.New(l2)
	program2 := p2.ParseProgram()
	ip2 := New(&out2, &out2, strings.NewReader(""), nil)
	env2 := object.NewEnvironment()
	ip2.Eval(program2, env2)
	assert.Equal(t, "Error: boom\n", out2.String())
}

func TestLenOverArraysAndStrings(t *testing.T) {
	out := run(t, `system.output(system.len("hello")); system.output(system.len([1,2,3]));`)
	assert.Equal(t, "5\n3\n", out)
}
