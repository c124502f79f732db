// ==============================================================================================
// FILE: object/object_test.go
// ==============================================================================================

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberInspectDropsDecimalForIntegers(t *testing.T) {
	assert.Equal(t, "5", (&Number{Value: 5}).Inspect())
	assert.Equal(t, "5.5", (&Number{Value: 5.5}).Inspect())
	assert.Equal(t, "-3", (&Number{Value: -3}).Inspect())
}

func TestErrorInspectMatchesDisplayForm(t *testing.T) {
	err := &Error{Name: "Oops", Message: "bad"}
	assert.Equal(t, "<Oops: bad>", err.Inspect())
}

func TestTruthiness(t *testing.T) {
	assert.False(t, Truthy(&Null{}))
	assert.False(t, Truthy(&Boolean{Value: false}))
	assert.True(t, Truthy(&Boolean{Value: true}))
	assert.False(t, Truthy(&Number{Value: 0}))
	assert.True(t, Truthy(&Number{Value: 1}))
	assert.False(t, Truthy(&String{Value: ""}))
	assert.True(t, Truthy(&String{Value: "x"}))
	assert.True(t, Truthy(&Array{}))
}

func TestDisplayStringForConcatenation(t *testing.T) {
	assert.Equal(t, "5", DisplayString(&Number{Value: 5}))
	assert.Equal(t, "true", DisplayString(&Boolean{Value: true}))
	assert.Equal(t, "null", DisplayString(&Null{}))
	assert.Equal(t, "hi", DisplayString(&String{Value: "hi"}))
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{&Number{}, "number"},
		{&String{}, "string"},
		{&Boolean{}, "boolean"},
		{&Null{}, "null"},
		{&Function{}, "function"},
		{&Array{}, "array"},
		{&Map{}, "map"},
		{&Namespace{}, "unknown"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TypeName(c.v))
	}
}

func TestCloneIsDeepForStringsArraysAndMaps(t *testing.T) {
	arr := &Array{Elements: []Value{&Number{Value: 1}, &String{Value: "a"}}}
	cloned := Clone(arr).(*Array)
	cloned.Elements[0].(*Number).Value = 99
	assert.Equal(t, float64(1), arr.Elements[0].(*Number).Value)

	m := NewMap()
	m.Set("k", &Number{Value: 1})
	clonedMap := Clone(m).(*Map)
	clonedMap.Set("k", &Number{Value: 2})
	v, _ := m.Get("k")
	assert.Equal(t, float64(1), v.(*Number).Value)
}

func TestMapOrderedSetAndGet(t *testing.T) {
	m := NewMap()
	m.Set("first", &Number{Value: 1})
	m.Set("second", &Number{Value: 2})
	m.Set("first", &Number{Value: 10})

	assert.Equal(t, []string{"first", "second"}, m.Keys)
	v, ok := m.Get("first")
	assert.True(t, ok)
	assert.Equal(t, float64(10), v.(*Number).Value)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}
