package spli

// Arithmetic and comparison. Mixed integer/float arguments promote to
// float; any non-numeric argument reports wrong-type naming the first
// offender.

// commutativeNumeric folds the arguments from start, staying integral
// until a float shows up.
func commutativeNumeric(args List[*Value], start int64, opI func(a, b int64) int64, opF func(a, b float64) float64) *Value {
	accI := start
	accF := 0.0
	isFloat := false
	for val, ok := args.Pop(); ok; val, ok = args.Pop() {
		switch kind := val.Kind.(type) {
		case Integer:
			if isFloat {
				accF = opF(accF, float64(kind))
			} else {
				accI = opI(accI, int64(kind))
			}
		case Float:
			if !isFloat {
				accF = float64(accI)
				isFloat = true
			}
			accF = opF(accF, float64(kind))
		default:
			return WrongType("number", val)
		}
	}
	if isFloat {
		return NewValue(Float(accF))
	}
	return NewValue(Integer(accI))
}

func builtinAdd(_ *Context, args List[*Value]) *Value {
	return commutativeNumeric(args, 0,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

func builtinMul(_ *Context, args List[*Value]) *Value {
	return commutativeNumeric(args, 1,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

// applyToNumbers applies the integer op when both sides are integers,
// and the float op otherwise, promoting as needed. The error result is
// a wrong-type exception naming whichever side is not numeric.
func applyToNumbers[T any](left, right *Value, applyInts func(a, b int64) T, applyFloats func(a, b float64) T) (T, *Value) {
	var zero T
	switch l := left.Kind.(type) {
	case Integer:
		switch r := right.Kind.(type) {
		case Integer:
			return applyInts(int64(l), int64(r)), nil
		case Float:
			return applyFloats(float64(l), float64(r)), nil
		}
		return zero, WrongType("number", right)
	case Float:
		switch r := right.Kind.(type) {
		case Integer:
			return applyFloats(float64(l), float64(r)), nil
		case Float:
			return applyFloats(float64(l), float64(r)), nil
		}
		return zero, WrongType("number", right)
	}
	return zero, WrongType("number", left)
}

// noncommutativeNumeric is the binary-only shape shared by sub and div.
func noncommutativeNumeric(args List[*Value], opI func(a, b int64) int64, opF func(a, b float64) float64) *Value {
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
	res, exc := applyToNumbers(left, right,
		func(a, b int64) *Value { return NewValue(Integer(opI(a, b))) },
		func(a, b float64) *Value { return NewValue(Float(opF(a, b))) })
	if exc != nil {
		return exc
	}
	return res
}

func builtinSub(_ *Context, args List[*Value]) *Value {
	return noncommutativeNumeric(args,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b })
}

// Division by zero follows the host semantics: an integer divisor of
// zero traps, a float one yields an infinity or NaN.
func builtinDiv(_ *Context, args List[*Value]) *Value {
	return noncommutativeNumeric(args,
		func(a, b int64) int64 { return a / b },
		func(a, b float64) float64 { return a / b })
}

// transitiveCompare chains comp over adjacent argument pairs. def is
// both the empty/singleton result and the fold mode: a true default
// ANDs the steps, a false one ORs them.
func transitiveCompare(args List[*Value], def bool, comp func(a, b *Value) (bool, *Value)) *Value {
	it := args.Iter()
	prev, ok := it.Next()
	if !ok {
		return NewValue(Bool(def))
	}
	acc := def
	for val, ok := it.Next(); ok; val, ok = it.Next() {
		step, exc := comp(prev, val)
		if exc != nil {
			return exc
		}
		if def {
			acc = acc && step
		} else {
			acc = acc || step
		}
		prev = val
	}
	return NewValue(Bool(acc))
}

func transitiveNumericCompare(args List[*Value], def bool, compInts func(a, b int64) bool, compFloats func(a, b float64) bool) *Value {
	return transitiveCompare(args, def, func(a, b *Value) (bool, *Value) {
		return applyToNumbers(a, b, compInts, compFloats)
	})
}

func builtinEq(_ *Context, args List[*Value]) *Value {
	return transitiveCompare(args, false, func(a, b *Value) (bool, *Value) {
		return a.Eq(b), nil
	})
}

func builtinNe(_ *Context, args List[*Value]) *Value {
	return transitiveCompare(args, false, func(a, b *Value) (bool, *Value) {
		return !a.Eq(b), nil
	})
}

func builtinLt(_ *Context, args List[*Value]) *Value {
	return transitiveNumericCompare(args, true,
		func(a, b int64) bool { return a < b },
		func(a, b float64) bool { return a < b })
}

func builtinLe(_ *Context, args List[*Value]) *Value {
	return transitiveNumericCompare(args, true,
		func(a, b int64) bool { return a <= b },
		func(a, b float64) bool { return a <= b })
}

func builtinGt(_ *Context, args List[*Value]) *Value {
	return transitiveNumericCompare(args, true,
		func(a, b int64) bool { return a > b },
		func(a, b float64) bool { return a > b })
}

func builtinGe(_ *Context, args List[*Value]) *Value {
	return transitiveNumericCompare(args, true,
		func(a, b int64) bool { return a >= b },
		func(a, b float64) bool { return a >= b })
}

// builtinCmp orders two numbers and answers with a raw symbol: less,
// equal, greater, or uncomparable (NaN on either side).
func builtinCmp(_ *Context, args List[*Value]) *Value {
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

	token, exc := applyToNumbers(left, right,
		func(a, b int64) string {
			switch {
			case a < b:
				return "less"
			case a > b:
				return "greater"
			}
			return "equal"
		},
		func(a, b float64) string {
			switch {
			case a < b:
				return "less"
			case a > b:
				return "greater"
			case a == b:
				return "equal"
			}
			return "uncomparable"
		})
	if exc != nil {
		return exc
	}
	return NewRawValue(Symbol(token))
}

func mathBuiltins() []*Function {
	return []*Function{
		{Name: "+", Call: builtinAdd},
		{Name: "*", Call: builtinMul},
		{Name: "-", Call: builtinSub},
		{Name: "/", Call: builtinDiv},
		{Name: "==", Call: builtinEq},
		{Name: "/=", Call: builtinNe},
		{Name: "<", Call: builtinLt},
		{Name: "<=", Call: builtinLe},
		{Name: ">", Call: builtinGt},
		{Name: ">=", Call: builtinGe},
		{Name: "cmp", Call: builtinCmp},
	}
}
