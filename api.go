package spli

// NewInterpreter returns a root context with the prelude installed,
// ready to evaluate user input. The REPL keeps one of these alive for
// the whole session so top-level definitions persist between inputs.
func NewInterpreter() *Context {
	ctx := NewContext()
	Prelude(ctx)
	return ctx
}

// EvalProgram parses src as a program and evaluates it in ctx. The
// top-level list is applied through `do`, so forms run top-to-bottom
// (the program list is sequential) and the last form's value is the
// result. A parse failure is returned without evaluating anything.
func EvalProgram(ctx *Context, src string) (*Value, *ParseError) {
	_, prog, err := ParseProgram(src)
	if err != nil {
		return nil, err
	}
	forms := prog.Kind.(ListValue).Items
	wrapped := NewSequentialValue(ListValue{Items: forms.Cons(NewValue(Symbol("do")))})
	return ctx.Evaluate(wrapped), nil
}
