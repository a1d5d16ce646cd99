package spli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(s string) *Value   { return NewValue(Symbol(s)) }
func num(n int64) *Value    { return NewValue(Integer(n)) }
func flt(f float64) *Value  { return NewValue(Float(f)) }
func str(s string) *Value   { return NewValue(String(s)) }
func lst(items ...*Value) *Value {
	return NewValue(ListValue{Items: ListFrom(items...)})
}

func rawOf(v *Value) *Value {
	return &Value{Raw: true, Sequential: v.Sequential, Kind: v.Kind}
}

func seqOf(v *Value) *Value {
	return &Value{Raw: v.Raw, Sequential: true, Kind: v.Kind}
}

func requireToken(t *testing.T, src string) (string, *Value) {
	t.Helper()
	rest, val, err := ParseToken(src)
	require.Nil(t, err)
	return rest, val
}

func assertToken(t *testing.T, src, wantRest string, want *Value) {
	t.Helper()
	rest, val := requireToken(t, src)
	assert.Equal(t, wantRest, rest)
	assert.True(t, want.Eq(val), "expected %s, got %s", want, val)
}

func TestParseToken(t *testing.T) {
	assertToken(t, "1", "", num(1))
	assertToken(t, "1.2", "", flt(1.2))
	assertToken(t, `"3"`, "", str("3"))
	assertToken(t, "four", "", sym("four"))
	assertToken(t, "'four", "", rawOf(sym("four")))
	assertToken(t, "'(1 2 3)", "", rawOf(lst(num(1), num(2), num(3))))
	assertToken(t, "!(1 2 3)", "", seqOf(lst(num(1), num(2), num(3))))
}

func TestParseToken_Idents(t *testing.T) {
	assertToken(t, "name", "", sym("name"))
	assertToken(t, "name and more", " and more", sym("name"))
	assertToken(t, "+-*/.:^%&$#@", "", sym("+-*/.:^%&$#@"))
	assertToken(t, "name'", "'", sym("name"))
	assertToken(t, "x2", "", sym("x2"))

	_, _, err := ParseToken(",invalid")
	require.NotNil(t, err)
	ctx, ok := err.firstContext()
	require.True(t, ok)
	assert.Equal(t, "ident", ctx.Context)
}

func TestParseToken_Integers(t *testing.T) {
	assertToken(t, "0", "", num(0))
	assertToken(t, "123", "", num(123))
	assertToken(t, "0x123", "", num(0x123))
	assertToken(t, "0o123", "", num(0o123))
	assertToken(t, "0b1010", "", num(10))
	// A digit outside the base ends the literal.
	assertToken(t, "0b123", "23", num(1))
	// No C-style octal.
	assertToken(t, "0123", "123", num(0))
	assertToken(t, "0q123", "q123", num(0))
}

func TestParseToken_IntegerOverflow(t *testing.T) {
	_, _, err := ParseToken("99999999999999999999")
	require.NotNil(t, err)
	ctx, ok := err.firstContext()
	require.True(t, ok)
	assert.Equal(t, "number", ctx.Context)
}

func TestParseToken_Floats(t *testing.T) {
	assertToken(t, "123.0", "", flt(123.0))
	assertToken(t, "5.6", "", flt(5.6))
	assertToken(t, "05.6", "", flt(5.6))
	assertToken(t, "5.6.", ".", flt(5.6))
	assertToken(t, "5.", "", flt(5.0))
	// A leading dot does not start a float; it scans as an ident.
	assertToken(t, ".5", "", sym(".5"))
	// Prefixed bases never carry a fraction.
	assertToken(t, "0x5.6", ".6", num(5))
}

func TestParseToken_Strings(t *testing.T) {
	assertToken(t, `"Hello, world!"`, "", str("Hello, world!"))
	assertToken(t, `"Hello!", "more"`, `, "more"`, str("Hello!"))
	assertToken(t, `"with \n multiple \t escapes \" \\ :)"`, "", str("with \n multiple \t escapes \" \\ :)"))
	assertToken(t, `""`, "", str(""))

	for name, src := range map[string]string{
		"unterminated":      `"Unterminated string`,
		"badly terminated":  `"Badly terminated string\"`,
		"unknown escape":    `"String with \bad escape"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseToken(src)
			require.NotNil(t, err)
		})
	}
}

func TestParseList_Simple(t *testing.T) {
	rest, items, err := ParseList("(1 2 3)")
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	assert.True(t, items.Eq(ListFrom(num(1), num(2), num(3)), (*Value).Eq))
}

func TestParseList_Heterogenous(t *testing.T) {
	rest, items, err := ParseList(`(1 1.2 "3" four)`)
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	assert.True(t, items.Eq(ListFrom(num(1), flt(1.2), str("3"), sym("four")), (*Value).Eq))
}

func TestParseList_Residual(t *testing.T) {
	rest, items, err := ParseList("(1 2 3)4")
	require.Nil(t, err)
	assert.Equal(t, "4", rest)
	assert.Equal(t, 3, items.Len())
}

func TestParseList_Nested(t *testing.T) {
	rest, items, err := ParseList("(+ !(/ 2 3) (eval '(* 2 4)) 6)")
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	want := ListFrom(
		sym("+"),
		seqOf(lst(sym("/"), num(2), num(3))),
		lst(sym("eval"), rawOf(lst(sym("*"), num(2), num(4)))),
		num(6),
	)
	assert.True(t, items.Eq(want, (*Value).Eq))
}

func TestParseList_WhitespacePolicy(t *testing.T) {
	// Optional space after ( and before ).
	rest, items, err := ParseList("(a )")
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	assert.True(t, items.Eq(ListFrom(sym("a")), (*Value).Eq))

	rest, items, err = ParseList("( a)")
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	assert.True(t, items.Eq(ListFrom(sym("a")), (*Value).Eq))

	rest, items, err = ParseList("()")
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	assert.Equal(t, 0, items.Len())

	// Tokens must be whitespace-separated.
	_, _, perr := ParseList(`(1"x")`)
	require.NotNil(t, perr)
	assert.Equal(t, ExpectWhitespace, perr.leaf().Expect)
	assert.Equal(t, 2, perr.leaf().Offset)
}

func TestParseProgram(t *testing.T) {
	rest, prog, err := ParseProgram("(+ 1 2)\n(list 3)\n")
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	require.True(t, prog.Sequential, "a program is a sequential list of forms")
	require.False(t, prog.Raw)

	forms := prog.Kind.(ListValue).Items
	require.Equal(t, 2, forms.Len())
	want := ListFrom(
		lst(sym("+"), num(1), num(2)),
		lst(sym("list"), num(3)),
	)
	assert.True(t, forms.Eq(want, (*Value).Eq))
}

func TestParseProgram_Empty(t *testing.T) {
	rest, prog, err := ParseProgram("  \n ")
	require.Nil(t, err)
	assert.Equal(t, "", rest)
	assert.Equal(t, 0, prog.Kind.(ListValue).Items.Len())
}

func TestParseProgram_Residual(t *testing.T) {
	rest, prog, err := ParseProgram("foo )")
	require.Nil(t, err)
	assert.Equal(t, ")", rest)
	assert.Equal(t, 1, prog.Kind.(ListValue).Items.Len())
}

func TestParseProgram_ErrorInsideForm(t *testing.T) {
	_, _, err := ParseProgram("(def 'x 42\nx")
	require.NotNil(t, err)
}

func TestParseProgram_MissingWhitespace(t *testing.T) {
	_, _, err := ParseProgram("0123")
	require.NotNil(t, err)
	assert.Equal(t, ExpectWhitespace, err.leaf().Expect)
	assert.Equal(t, 1, err.leaf().Offset)
}

func TestParseToken_ModifierBindsToNextToken(t *testing.T) {
	assertToken(t, "'123", "", rawOf(num(123)))
	assertToken(t, `!"s"`, "", seqOf(str("s")))
}
