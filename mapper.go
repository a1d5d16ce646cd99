package spli

import (
	"runtime"
	"sync"
)

// Seq is a finite iterator with a known exact remaining length; the
// mapper uses the length to size its slot buffer up front.
type Seq[T any] interface {
	Next() (T, bool)
	Len() int
}

// Mapper owns a reusable output buffer and a handle to a thread pool.
// One Map call partitions the buffer into per-task single-element
// slots, dispatches one task per input element, joins the scope, and
// drains the buffer in input order. No two tasks alias a slot.
type Mapper[I, O any] struct {
	storage    []O
	threadpool *ThreadPool
}

// NewMapper builds a mapper with an initial buffer capacity.
func NewMapper[I, O any](threadpool *ThreadPool, storageSize int) *Mapper[I, O] {
	return &Mapper[I, O]{
		storage:    make([]O, 0, storageSize),
		threadpool: threadpool,
	}
}

// Map applies fn to every element of seq concurrently and returns the
// results in input order. fn must be side-effect-safe for parallel
// execution.
func (m *Mapper[I, O]) Map(fn func(I) O, seq Seq[I]) []O {
	n := seq.Len()
	if cap(m.storage) < n {
		m.storage = make([]O, n)
	} else {
		m.storage = m.storage[:n]
	}

	m.threadpool.Scoped(func(s *Scope) {
		for i := 0; ; i++ {
			item, ok := seq.Next()
			if !ok {
				break
			}
			slot := &m.storage[i]
			arg := item
			s.Execute(func() { *slot = fn(arg) })
		}
	})

	out := make([]O, n)
	copy(out, m.storage)
	return out
}

// MapperPool is a mutex-guarded cache of mappers sharing one thread
// pool. Callers borrow a mapper per parallel map and return it after;
// a mapper lost to a panicking batch is replaced on demand.
type MapperPool[I, O any] struct {
	mu   sync.Mutex
	pool *Pool[*Mapper[I, O]]
}

// Map acquires a mapper, runs the map, and returns the mapper to the
// cache.
func (mp *MapperPool[I, O]) Map(fn func(I) O, seq Seq[I]) []O {
	mp.mu.Lock()
	m := mp.pool.Get()
	mp.mu.Unlock()

	res := m.Map(fn, seq)

	mp.mu.Lock()
	mp.pool.Put(m)
	mp.mu.Unlock()
	return res
}

// MapperPoolBuilder enumerates the pool's tunables: how many mappers to
// keep preallocated, the initial per-mapper buffer capacity, and the
// worker count of the shared thread pool.
type MapperPoolBuilder[I, O any] struct {
	poolSize     int
	storageSize  int
	workersCount int
}

// NewMapperPoolBuilder returns a builder with the default worker count
// of one per core.
func NewMapperPoolBuilder[I, O any]() *MapperPoolBuilder[I, O] {
	return &MapperPoolBuilder[I, O]{workersCount: runtime.NumCPU()}
}

func (b *MapperPoolBuilder[I, O]) PoolSize(n int) *MapperPoolBuilder[I, O] {
	b.poolSize = n
	return b
}

func (b *MapperPoolBuilder[I, O]) StorageSize(n int) *MapperPoolBuilder[I, O] {
	b.storageSize = n
	return b
}

func (b *MapperPoolBuilder[I, O]) WorkersCount(n int) *MapperPoolBuilder[I, O] {
	b.workersCount = n
	return b
}

// Build starts the shared thread pool and primes the mapper cache.
func (b *MapperPoolBuilder[I, O]) Build() *MapperPool[I, O] {
	threadpool := NewThreadPool(b.workersCount)
	storageSize := b.storageSize
	return &MapperPool[I, O]{
		pool: NewPool(b.poolSize, func() *Mapper[I, O] {
			return NewMapper[I, O](threadpool, storageSize)
		}),
	}
}
