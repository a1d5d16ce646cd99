package spli

// Exception constructors for the error taxonomy. Each returns the
// exception already wrapped as a value, since that is how exceptions
// travel through evaluation.

// NewException builds an exception value from a tag and its arguments.
func NewException(ident string, args List[*Value]) *Value {
	return NewValue(&Exception{Ident: ident, Args: args})
}

// WrongType reports a value of an unexpected kind. Args carry the
// expected type symbol followed by the offending value.
func WrongType(expected string, val *Value) *Value {
	return NewException("wrong-type", ListFrom(NewValue(Symbol(expected)), val))
}

// TooFewArguments reports an arity underflow; expected is the count the
// callee requires.
func TooFewArguments(expected int64) *Value {
	return NewException("too-few-arguments", ListFrom(NewValue(Integer(expected))))
}

// TooManyArguments reports an arity overflow.
func TooManyArguments(expected int64) *Value {
	return NewException("too-many-arguments", ListFrom(NewValue(Integer(expected))))
}

// ListIsEmpty reports head or tail of an empty list.
func ListIsEmpty() *Value {
	return NewException("list-is-empty", NewList[*Value]())
}

// UndefinedIdent reports a symbol with no binding in scope. The symbol
// is carried raw so the exception can be inspected without it being
// re-resolved.
func UndefinedIdent(sym Symbol) *Value {
	return NewException("undefined-ident", ListFrom(NewRawValue(sym)))
}

// NotAFunction reports a list application whose head is not callable.
func NotAFunction(head *Value) *Value {
	return NewException("not-a-function", ListFrom(head))
}
