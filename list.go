package spli

import "strings"

// listNode is one immutable cell of a persistent list. Once constructed
// a node is never written to, which is what makes tail sharing safe.
type listNode[T any] struct {
	val  T
	next *listNode[T]
}

// List is a persistent singly linked list: a head pointer plus a cached
// length. Cons, Head and Tail are O(1) and never copy the spine, so any
// number of lists may share a common tail. The zero value is the empty
// list and is ready to use.
type List[T any] struct {
	head   *listNode[T]
	length int
}

// NewList returns an empty list.
func NewList[T any]() List[T] { return List[T]{} }

// ListFrom builds a list holding items in the given order. Items are
// consed in reverse so that iteration yields them front to back.
func ListFrom[T any](items ...T) List[T] {
	var l List[T]
	for i := len(items) - 1; i >= 0; i-- {
		l = l.Cons(items[i])
	}
	return l
}

// Len returns the cached element count.
func (l List[T]) Len() int { return l.length }

// Cons returns a new list with val prepended. The receiver is unchanged
// and becomes the tail of the result.
func (l List[T]) Cons(val T) List[T] {
	return List[T]{
		head:   &listNode[T]{val: val, next: l.head},
		length: l.length + 1,
	}
}

// Head returns the first element, or false when the list is empty.
func (l List[T]) Head() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.val, true
}

// Tail returns a view of everything after the head. The view shares the
// spine with the receiver.
func (l List[T]) Tail() (List[T], bool) {
	if l.head == nil {
		return List[T]{}, false
	}
	return List[T]{head: l.head.next, length: l.length - 1}, true
}

// HeadTail splits the list into its first element and the rest.
func (l List[T]) HeadTail() (T, List[T], bool) {
	head, ok := l.Head()
	if !ok {
		return head, List[T]{}, false
	}
	tail, _ := l.Tail()
	return head, tail, true
}

// Last walks the spine and returns the final element.
func (l List[T]) Last() (T, bool) {
	var last T
	if l.head == nil {
		return last, false
	}
	for n := l.head; n != nil; n = n.next {
		last = n.val
	}
	return last, true
}

// Pop mutates the receiver to become its own tail and returns the
// former head. Other lists sharing the old spine are unaffected.
func (l *List[T]) Pop() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	val := l.head.val
	l.head = l.head.next
	l.length--
	return val, true
}

// ListIter walks a list from head to tail without mutating it.
type ListIter[T any] struct {
	rest List[T]
}

// Iter returns an iterator positioned at the head of the list.
func (l List[T]) Iter() *ListIter[T] { return &ListIter[T]{rest: l} }

// Next yields the next element, or false once the list is exhausted.
func (it *ListIter[T]) Next() (T, bool) { return it.rest.Pop() }

// Len reports how many elements remain.
func (it *ListIter[T]) Len() int { return it.rest.Len() }

// Slice copies the elements into a fresh slice in head-to-tail order.
func (l List[T]) Slice() []T {
	out := make([]T, 0, l.length)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.val)
	}
	return out
}

// Eq reports whether both lists hold equal elements in the same order,
// using eq to compare elements pairwise.
func (l List[T]) Eq(other List[T], eq func(a, b T) bool) bool {
	if l.length != other.length {
		return false
	}
	a, b := l.head, other.head
	for a != nil {
		if !eq(a.val, b.val) {
			return false
		}
		a, b = a.next, b.next
	}
	return true
}

// Format renders the list as "(a b c)" with elements rendered by f.
func (l List[T]) Format(f func(T) string) string {
	var s strings.Builder
	s.WriteByte('(')
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			s.WriteByte(' ')
		}
		s.WriteString(f(n.val))
	}
	s.WriteByte(')')
	return s.String()
}
