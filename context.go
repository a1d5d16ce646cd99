package spli

import "sync"

// Context is an evaluation environment: a mutable name map, an optional
// parent, and a handle to the worker pool shared by every context
// descended from the same root. Identifier lookup walks outward through
// the parent chain; mutations stay local to the context they happen in.
type Context struct {
	pool   *MapperPool[*Value, *Value]
	parent *Context

	mu    sync.Mutex
	names map[string]*Value
}

// NewContext creates a root context with a default-sized worker pool.
func NewContext() *Context {
	return NewContextWithPool(NewMapperPoolBuilder[*Value, *Value]().Build())
}

// NewContextWithPool creates a root context around an existing pool.
func NewContextWithPool(pool *MapperPool[*Value, *Value]) *Context {
	return &Context{pool: pool, names: make(map[string]*Value)}
}

// Fork produces a child whose bindings are a snapshot of the
// receiver's. The snapshot is taken under the parent's lock so no
// reader ever observes a partial copy.
func (c *Context) Fork() *Context {
	c.mu.Lock()
	names := make(map[string]*Value, len(c.names))
	for k, v := range c.names {
		names[k] = v
	}
	c.mu.Unlock()
	return &Context{pool: c.pool, parent: c, names: names}
}

// Define binds name to val in this context.
func (c *Context) Define(name string, val *Value) {
	c.mu.Lock()
	c.names[name] = val
	c.mu.Unlock()
}

// FindIdent resolves name against this context and its ancestors. Each
// map is read under its own lock, released before ascending.
func (c *Context) FindIdent(name string) (*Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		ctx.mu.Lock()
		val, ok := ctx.names[name]
		ctx.mu.Unlock()
		if ok {
			return val, true
		}
	}
	return nil, false
}

// Evaluate reduces a value. Raw values, empty lists and every
// non-symbol scalar are self-evaluating; symbols resolve against the
// context chain; non-empty lists are applications.
func (c *Context) Evaluate(val *Value) *Value {
	if val.Raw {
		return val
	}
	switch kind := val.Kind.(type) {
	case Symbol:
		if bound, ok := c.FindIdent(string(kind)); ok {
			return bound
		}
		return UndefinedIdent(kind)
	case ListValue:
		if kind.Items.Len() == 0 {
			return val
		}
		return c.apply(val, kind.Items)
	default:
		return val
	}
}

// apply evaluates every element of a non-empty list, head included,
// and invokes the head on the rest. A sequential list is evaluated
// left-to-right on the calling goroutine; otherwise the elements go to
// the mapper pool and the results come back in input order.
func (c *Context) apply(val *Value, items List[*Value]) *Value {
	evaled, exc := c.evalElements(items, val.Sequential)
	if exc != nil {
		return exc
	}
	head := evaled[0]
	fn, ok := head.Kind.(*Function)
	if !ok {
		return NotAFunction(head)
	}
	return fn.Call(c, ListFrom(evaled[1:]...))
}

// evalElements returns the evaluated elements, or the first exception
// in input order. Sequential evaluation aborts at the exception;
// parallel evaluation runs the whole batch and surfaces the earliest
// one afterwards, since a pending scoped batch cannot be cancelled.
func (c *Context) evalElements(items List[*Value], sequential bool) ([]*Value, *Value) {
	if sequential {
		out := make([]*Value, 0, items.Len())
		it := items.Iter()
		for item, ok := it.Next(); ok; item, ok = it.Next() {
			res := c.Evaluate(item)
			if res.IsException() {
				return nil, res
			}
			out = append(out, res)
		}
		return out, nil
	}

	out := c.pool.Map(c.Evaluate, items.Iter())
	for _, res := range out {
		if res.IsException() {
			return nil, res
		}
	}
	return out, nil
}
