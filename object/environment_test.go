// ==============================================================================================
// FILE: object/environment_test.go
// ==============================================================================================

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndGet(t *testing.T) {
	env := NewEnvironment()
	ok := env.Declare("x", &Number{Value: 5}, false, "number")
	require.True(t, ok)

	v, found := env.Get("x")
	require.True(t, found)
	assert.Equal(t, &Number{Value: 5}, v)
}

func TestRedeclarationInSameFrameFails(t *testing.T) {
	env := NewEnvironment()
	require.True(t, env.Declare("x", &Number{Value: 1}, false, "number"))
	assert.False(t, env.Declare("x", &Number{Value: 2}, false, "number"))

	v, _ := env.Get("x")
	assert.Equal(t, &Number{Value: 1}, v)
}

func TestParentWalkingLookup(t *testing.T) {
	parent := NewEnvironment()
	parent.Declare("g", &String{Value: "global"}, false, "string")
	child := NewEnclosedEnvironment(parent)

	v, found := child.Get("g")
	require.True(t, found)
	assert.Equal(t, "global", v.(*String).Value)

	_, found = child.Get("missing")
	assert.False(t, found)
}

func TestAssignUpdatesOwningFrame(t *testing.T) {
	parent := NewEnvironment()
	parent.Declare("x", &Number{Value: 1}, false, "number")
	child := NewEnclosedEnvironment(parent)

	ok, wasConst := child.Assign("x", &Number{Value: 2})
	assert.True(t, ok)
	assert.False(t, wasConst)

	v, _ := parent.Get("x")
	assert.Equal(t, float64(2), v.(*Number).Value)
}

func TestAssignToConstRefused(t *testing.T) {
	env := NewEnvironment()
	env.Declare("pi", &Number{Value: 3.14}, true, "number")

	ok, wasConst := env.Assign("pi", &Number{Value: 0})
	assert.True(t, ok)
	assert.True(t, wasConst)

	v, _ := env.Get("pi")
	assert.Equal(t, 3.14, v.(*Number).Value)
}

func TestAssignToUndeclaredFails(t *testing.T) {
	env := NewEnvironment()
	ok, wasConst := env.Assign("nope", &Null{})
	assert.False(t, ok)
	assert.False(t, wasConst)
}

func TestConstOfAndTypeNameOf(t *testing.T) {
	env := NewEnvironment()
	env.Declare("c", &Boolean{Value: true}, true, "boolean")

	isConst, found := env.ConstOf("c")
	require.True(t, found)
	assert.True(t, isConst)

	typeName, found := env.TypeNameOf("c")
	require.True(t, found)
	assert.Equal(t, "boolean", typeName)

	_, found = env.ConstOf("nope")
	assert.False(t, found)
}

func TestAnnotateOnlyAffectsLocalFrame(t *testing.T) {
	parent := NewEnvironment()
	parent.Declare("x", &Number{Value: 1}, false, "number")
	child := NewEnclosedEnvironment(parent)

	assert.False(t, child.Annotate("x", "string"))
	assert.True(t, parent.Annotate("x", "string"))

	typeName, _ := parent.TypeNameOf("x")
	assert.Equal(t, "string", typeName)
}

func TestNamesPreservesDeclarationOrder(t *testing.T) {
	env := NewEnvironment()
	env.Declare("b", &Null{}, false, "null")
	env.Declare("a", &Null{}, false, "null")
	assert.Equal(t, []string{"b", "a"}, env.Names())
}
