package spli

// Prelude installs every builtin plus the boolean literals into ctx.
// It is meant for the root context, before the first user input.
func Prelude(ctx *Context) {
	ctx.Define("true", NewValue(Bool(true)))
	ctx.Define("false", NewValue(Bool(false)))

	groups := [][]*Function{
		langBuiltins(),
		listBuiltins(),
		mathBuiltins(),
		ioBuiltins(),
	}
	for _, group := range groups {
		for _, fn := range group {
			ctx.Define(fn.Name, NewValue(fn))
		}
	}
}
