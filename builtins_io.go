package spli

import (
	"fmt"
	"time"
)

// I/O and clock builtins.

// builtinDebug prints each argument on its own line. Output order
// across parallel arms is whatever the scheduler makes of it; wrap the
// surrounding list with ! when the order matters.
func builtinDebug(_ *Context, args List[*Value]) *Value {
	for val, ok := args.Pop(); ok; val, ok = args.Pop() {
		fmt.Println(val)
	}
	return Unit()
}

// builtinSleep suspends the calling goroutine for t seconds. Negative
// durations are clamped to zero.
func builtinSleep(_ *Context, args List[*Value]) *Value {
	arg, ok := args.Pop()
	if !ok {
		return TooFewArguments(1)
	}
	if args.Len() != 0 {
		return TooManyArguments(1)
	}

	var seconds float64
	switch kind := arg.Kind.(type) {
	case Integer:
		seconds = float64(kind)
	case Float:
		seconds = float64(kind)
	default:
		return WrongType("number", arg)
	}
	if seconds > 0 {
		time.Sleep(time.Duration(seconds * float64(time.Second)))
	}
	return Unit()
}

// builtinTime returns wall time as float seconds since the epoch.
func builtinTime(_ *Context, args List[*Value]) *Value {
	if args.Len() != 0 {
		return TooManyArguments(0)
	}
	now := float64(time.Now().UnixNano()) / float64(time.Second)
	return NewValue(Float(now))
}

func ioBuiltins() []*Function {
	return []*Function{
		{Name: "debug", Call: builtinDebug},
		{Name: "sleep", Call: builtinSleep},
		{Name: "time", Call: builtinTime},
	}
}
