package spli

// Language core forms. These are ordinary functions: their arguments
// arrive already evaluated, and forms that need code as data expect the
// caller to pass raw (quoted) lists.

func builtinDef(ctx *Context, args List[*Value]) *Value {
	const expected = 2
	ident, ok := args.Pop()
	if !ok {
		return TooFewArguments(expected)
	}
	sym, isSym := ident.Kind.(Symbol)
	if !isSym {
		return WrongType("ident", ident)
	}
	val, ok := args.Pop()
	if !ok {
		return TooFewArguments(expected)
	}
	if args.Len() != 0 {
		return TooManyArguments(expected)
	}
	ctx.Define(string(sym), val)
	return val
}

// createFunction builds a user function from a parameter list and a
// body. The body's flags are stripped so a quoted body evaluates as
// code when the function runs; the defining context is forked once at
// creation, and again per call so recursion and parallel calls never
// share bindings.
func createFunction(ctx *Context, name string, args List[*Value]) *Value {
	const expected = 2
	params, ok := args.Pop()
	if !ok {
		return TooFewArguments(expected)
	}
	paramList, isList := params.Kind.(ListValue)
	if !isList {
		return WrongType("list", params)
	}
	body, ok := args.Pop()
	if !ok {
		return TooFewArguments(expected)
	}
	if args.Len() != 0 {
		return TooManyArguments(expected)
	}

	idents := make([]string, 0, paramList.Items.Len())
	it := paramList.Items.Iter()
	for param, ok := it.Next(); ok; param, ok = it.Next() {
		sym, isSym := param.Kind.(Symbol)
		if !isSym {
			return WrongType("ident", param)
		}
		idents = append(idents, string(sym))
	}

	bodyCode := NewValue(body.Kind)
	captured := ctx.Fork()
	needed := int64(len(idents))

	return NewValue(&Function{
		Name: name,
		Call: func(_ *Context, callArgs List[*Value]) *Value {
			fresh := captured.Fork()

			actual := int64(callArgs.Len())
			if actual > needed {
				return TooManyArguments(needed)
			}
			if actual < needed {
				return TooFewArguments(needed)
			}

			for _, ident := range idents {
				arg, _ := callArgs.Pop()
				fresh.Define(ident, arg)
			}
			return fresh.Evaluate(bodyCode)
		},
	})
}

func builtinDefn(ctx *Context, args List[*Value]) *Value {
	// defn takes a name, a parameter list and a body.
	const expected = 3
	name, ok := args.Pop()
	if !ok {
		return TooFewArguments(expected)
	}
	sym, isSym := name.Kind.(Symbol)
	if !isSym {
		return WrongType("ident", name)
	}
	if args.Len() < expected-1 {
		return TooFewArguments(expected)
	}
	if args.Len() > expected-1 {
		return TooManyArguments(expected)
	}

	fn := createFunction(ctx, string(sym), args)
	if fn.IsException() {
		return fn
	}
	ctx.Define(string(sym), fn)
	return fn
}

func builtinFn(ctx *Context, args List[*Value]) *Value {
	return createFunction(ctx, "<lambda>", args)
}

func builtinList(_ *Context, args List[*Value]) *Value {
	return NewValue(ListValue{Items: args})
}

func builtinDo(_ *Context, args List[*Value]) *Value {
	res := Unit()
	for item, ok := args.Pop(); ok; item, ok = args.Pop() {
		res = item
	}
	return res
}

func builtinDoDiscard(_ *Context, _ List[*Value]) *Value {
	return Unit()
}

func builtinIf(ctx *Context, args List[*Value]) *Value {
	pred, ok := args.Pop()
	if !ok {
		return TooFewArguments(2)
	}
	cond, isBool := pred.Kind.(Bool)
	if !isBool {
		return WrongType("bool", pred)
	}
	ifTrue, ok := args.Pop()
	if !ok {
		return TooFewArguments(2)
	}
	ifFalse := Unit()
	if args.Len() != 0 {
		ifFalse, _ = args.Pop()
		if args.Len() != 0 {
			return TooManyArguments(3)
		}
	}

	// The chosen branch is re-evaluated with its flags stripped, so a
	// raw list argument runs as code here. This is the language's
	// idiom for lazy branches.
	if bool(cond) {
		return ctx.Evaluate(NewValue(ifTrue.Kind))
	}
	return ctx.Evaluate(NewValue(ifFalse.Kind))
}

// truish: false and the empty list are false, everything else is true.
func truish(val *Value) bool {
	switch kind := val.Kind.(type) {
	case Bool:
		return bool(kind)
	case ListValue:
		return kind.Items.Len() != 0
	}
	return true
}

func builtinCond(_ *Context, args List[*Value]) *Value {
	for branch, ok := args.Pop(); ok; branch, ok = args.Pop() {
		if list, isList := branch.Kind.(ListValue); isList {
			head, tail, nonEmpty := list.Items.HeadTail()
			if !nonEmpty || !truish(head) {
				continue
			}
			if tail.Len() == 0 {
				return head
			}
			last, _ := tail.Last()
			return last
		}
		if truish(branch) {
			return branch
		}
	}
	return Unit()
}

func builtinAtom(_ *Context, args List[*Value]) *Value {
	arg, ok := args.Pop()
	if !ok {
		return TooFewArguments(1)
	}
	if args.Len() != 0 {
		return TooManyArguments(1)
	}
	if list, isList := arg.Kind.(ListValue); isList {
		return NewValue(Bool(list.Items.Len() == 0))
	}
	return NewValue(Bool(true))
}

func langBuiltins() []*Function {
	return []*Function{
		{Name: "def", Call: builtinDef},
		{Name: "defn", Call: builtinDefn},
		{Name: "fn", Call: builtinFn},
		{Name: "list", Call: builtinList},
		{Name: "do", Call: builtinDo},
		{Name: "do_", Call: builtinDoDiscard},
		{Name: "if", Call: builtinIf},
		{Name: "cond", Call: builtinCond},
		{Name: "atom", Call: builtinAtom},
	}
}
