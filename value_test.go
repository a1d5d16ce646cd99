package spli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Display(t *testing.T) {
	for _, test := range []struct {
		name     string
		value    *Value
		expected string
	}{
		{name: "symbol", value: NewValue(Symbol("four")), expected: "four"},
		{name: "bool true", value: NewValue(Bool(true)), expected: "true"},
		{name: "bool false", value: NewValue(Bool(false)), expected: "false"},
		{name: "integer", value: NewValue(Integer(42)), expected: "42"},
		{name: "negative integer", value: NewValue(Integer(-7)), expected: "-7"},
		{name: "float", value: NewValue(Float(1.2)), expected: "1.2"},
		{name: "whole float", value: NewValue(Float(3)), expected: "3"},
		{name: "string", value: NewValue(String("a\nb")), expected: `"a\nb"`},
		{name: "empty list", value: Unit(), expected: "()"},
		{
			name: "list",
			value: NewValue(ListValue{Items: ListFrom(
				NewValue(Integer(1)),
				NewValue(Integer(2)),
				NewValue(Integer(3)),
			)}),
			expected: "(1 2 3)",
		},
		{name: "raw symbol", value: NewRawValue(Symbol("x")), expected: "'x"},
		{
			name: "sequential list",
			value: NewSequentialValue(ListValue{Items: ListFrom(
				NewValue(Symbol("+")),
				NewValue(Integer(1)),
			)}),
			expected: "!(+ 1)",
		},
		{
			name: "nested prefixes",
			value: NewValue(ListValue{Items: ListFrom(
				NewValue(Symbol("+")),
				NewSequentialValue(ListValue{Items: ListFrom(
					NewValue(Symbol("/")),
					NewValue(Integer(2)),
				)}),
				NewRawValue(ListValue{Items: ListFrom(
					NewValue(Symbol("*")),
					NewValue(Integer(4)),
				)}),
			)}),
			expected: "(+ !(/ 2) '(* 4))",
		},
		{
			name:     "function",
			value:    NewValue(&Function{Name: "inc"}),
			expected: "{function inc}",
		},
		{
			name:     "exception",
			value:    ListIsEmpty(),
			expected: "{exception list-is-empty}",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.value.String())
		})
	}
}

func TestValue_TypeNames(t *testing.T) {
	assert.Equal(t, "symbol", NewValue(Symbol("s")).Kind.Type())
	assert.Equal(t, "bool", NewValue(Bool(true)).Kind.Type())
	assert.Equal(t, "integer", NewValue(Integer(1)).Kind.Type())
	assert.Equal(t, "float", NewValue(Float(1)).Kind.Type())
	assert.Equal(t, "string", NewValue(String("")).Kind.Type())
	assert.Equal(t, "list", Unit().Kind.Type())
	assert.Equal(t, "function", NewValue(&Function{}).Kind.Type())
	assert.Equal(t, "exception", ListIsEmpty().Kind.Type())
}

func TestValue_Eq(t *testing.T) {
	assert.True(t, NewValue(Integer(1)).Eq(NewValue(Integer(1))))
	assert.False(t, NewValue(Integer(1)).Eq(NewValue(Integer(2))))
	assert.False(t, NewValue(Integer(1)).Eq(NewValue(Float(1))), "integer and float are distinct kinds")
	assert.False(t, NewValue(Integer(1)).Eq(NewRawValue(Integer(1))), "flags participate in equality")
	assert.True(t, NewValue(String("a")).Eq(NewValue(String("a"))))
	assert.True(t,
		NewValue(ListValue{Items: ListFrom(NewValue(Integer(1)), NewValue(Symbol("x")))}).
			Eq(NewValue(ListValue{Items: ListFrom(NewValue(Integer(1)), NewValue(Symbol("x")))})))
	assert.False(t,
		NewValue(ListValue{Items: ListFrom(NewValue(Integer(1)))}).
			Eq(NewValue(ListValue{Items: ListFrom(NewValue(Integer(2)))})))
}

func TestValue_FunctionEqIsIdentity(t *testing.T) {
	call := func(_ *Context, _ List[*Value]) *Value { return Unit() }
	fn := &Function{Name: "a", Call: call}
	same := NewValue(fn)
	other := NewValue(&Function{Name: "a", Call: call})
	assert.True(t, same.Eq(NewValue(fn)))
	assert.False(t, same.Eq(other), "names are decorative, identity decides")
}

func TestValue_ExceptionEq(t *testing.T) {
	assert.True(t, ListIsEmpty().Eq(ListIsEmpty()))
	assert.True(t, TooFewArguments(2).Eq(TooFewArguments(2)))
	assert.False(t, TooFewArguments(2).Eq(TooFewArguments(3)))
	assert.False(t, TooFewArguments(2).Eq(TooManyArguments(2)))
}

func TestValue_IsException(t *testing.T) {
	assert.True(t, ListIsEmpty().IsException())
	assert.False(t, Unit().IsException())
	assert.False(t, NewValue(Integer(0)).IsException())
}
