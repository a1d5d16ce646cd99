package spli

// List primitives.

// builtinCons prepends onto a list; a non-list second argument yields
// the two-element list (x xs) instead.
func builtinCons(_ *Context, args List[*Value]) *Value {
	const expected = 2
	left, ok := args.Pop()
	if !ok {
		return TooFewArguments(expected)
	}
	right, ok := args.Pop()
	if !ok {
		return TooFewArguments(expected)
	}
	if args.Len() != 0 {
		return TooManyArguments(expected)
	}
	if list, isList := right.Kind.(ListValue); isList {
		return NewValue(ListValue{Items: list.Items.Cons(left)})
	}
	return NewValue(ListValue{Items: ListFrom(left, right)})
}

func popListArg(args *List[*Value]) (ListValue, *Value) {
	arg, ok := args.Pop()
	if !ok {
		return ListValue{}, TooFewArguments(1)
	}
	list, isList := arg.Kind.(ListValue)
	if !isList {
		return ListValue{}, WrongType("list", arg)
	}
	if args.Len() != 0 {
		return ListValue{}, TooManyArguments(1)
	}
	return list, nil
}

func builtinHead(_ *Context, args List[*Value]) *Value {
	list, exc := popListArg(&args)
	if exc != nil {
		return exc
	}
	head, ok := list.Items.Head()
	if !ok {
		return ListIsEmpty()
	}
	return head
}

func builtinTail(_ *Context, args List[*Value]) *Value {
	list, exc := popListArg(&args)
	if exc != nil {
		return exc
	}
	tail, ok := list.Items.Tail()
	if !ok {
		return ListIsEmpty()
	}
	return NewValue(ListValue{Items: tail})
}

func listBuiltins() []*Function {
	return []*Function{
		{Name: "cons", Call: builtinCons},
		{Name: "head", Call: builtinHead},
		{Name: "tail", Call: builtinTail},
	}
}
