package ident

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Label string
}

func newWidget() *widget {
	return &widget{Label: "built"}
}

func TestOf(t *testing.T) {
	t.Parallel()

	sym := NewSymbol("s")
	tok := NewToken("t")
	var nilTok *Token

	id, ok := Of("plain")
	require.True(t, ok)
	assert.Equal(t, StringToken("plain"), id)

	id, ok = Of(sym)
	require.True(t, ok)
	assert.Same(t, sym, id)

	id, ok = Of(tok)
	require.True(t, ok)
	assert.Same(t, tok, id)

	_, ok = Of(nil)
	assert.False(t, ok)
	_, ok = Of(nilTok)
	assert.False(t, ok)
	_, ok = Of(42)
	assert.False(t, ok)
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	a := NewToken("same")
	b := NewToken("same")
	assert.False(t, Identifier(a) == Identifier(b))

	keys := map[Identifier]int{a: 1, b: 2, StringToken("x"): 3}
	assert.Len(t, keys, 3)
	assert.Equal(t, 3, keys[StringToken("x")])
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "token", StringToken("token").String())
	assert.Equal(t, "Symbol(token5)", NewSymbol("token5").String())
	assert.Equal(t, "Token('token4')", NewToken("token4").String())
}

func TestClass(t *testing.T) {
	t.Parallel()

	class, err := NewClass(newWidget, "")
	require.NoError(t, err)
	assert.Equal(t, "widget", class.Name())
	assert.Equal(t, 0, class.Required())

	named, err := NewClass(newWidget, "Gadget")
	require.NoError(t, err)
	assert.Equal(t, "Gadget", named.String())

	out, err := class.New(nil)
	require.NoError(t, err)
	assert.Equal(t, "built", out.(*widget).Label)

	_, err = NewClass("nope", "")
	require.Error(t, err)
}

func TestAllocClass(t *testing.T) {
	t.Parallel()

	class := AllocClass(reflect.TypeOf(&widget{}), "")
	assert.Equal(t, "widget", class.Name())
	assert.Equal(t, 0, class.Params())

	first, err := class.New(nil)
	require.NoError(t, err)
	second, err := class.New(nil)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestRefs(t *testing.T) {
	t.Parallel()

	var late *Class
	eager := NewEagerRef(func() *Class { return late })
	lazy := NewLazyRef(
		func() *Class { return late }, func(th Thunk) any {
			return th
		},
	)

	assert.Nil(t, eager.Class())
	assert.Equal(t, "<nil>", lazy.String())

	late = AllocClass(reflect.TypeOf(&widget{}), "Late")
	assert.Same(t, late, eager.Class())
	assert.Equal(t, "Late", eager.String())
	assert.Equal(t, "Late", lazy.String())

	wrapped := lazy.Wrap(func() (any, error) { return "v", nil })
	v, err := wrapped.(Thunk)()
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}
