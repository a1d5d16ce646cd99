package spli

import "sync"

// ThreadPool is a fixed set of worker goroutines executing scoped task
// batches. A scope call blocks until every task submitted through it
// has completed, so tasks may safely borrow from the enclosing frame.
type ThreadPool struct {
	tasks chan func()
	done  sync.WaitGroup
}

// NewThreadPool starts a pool with the given worker count.
func NewThreadPool(workers int) *ThreadPool {
	if workers < 1 {
		workers = 1
	}
	p := &ThreadPool{tasks: make(chan func())}
	p.done.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.done.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Close stops the workers once in-flight tasks finish. Scopes must not
// be started after Close.
func (p *ThreadPool) Close() {
	close(p.tasks)
	p.done.Wait()
}

// Scope collects the tasks of one batch. Execute hands each task to an
// idle worker, or runs it on the submitting goroutine when every worker
// is busy, which keeps nested scopes from deadlocking on a full pool.
type Scope struct {
	pool *ThreadPool
	wg   sync.WaitGroup

	mu       sync.Mutex
	panicked any
}

// Scoped runs fn with a fresh scope and joins the whole batch before
// returning. The first panic raised by a task is re-raised here.
func (p *ThreadPool) Scoped(fn func(*Scope)) {
	s := &Scope{pool: p}
	fn(s)
	s.wg.Wait()
	if s.panicked != nil {
		panic(s.panicked)
	}
}

// Execute schedules task within the scope.
func (s *Scope) Execute(task func()) {
	s.wg.Add(1)
	run := func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.mu.Lock()
				if s.panicked == nil {
					s.panicked = r
				}
				s.mu.Unlock()
			}
		}()
		task()
	}
	select {
	case s.pool.tasks <- run:
	default:
		run()
	}
}

// Pool is a bounded cache of reusable resources with a factory for
// misses. Losing an item (never returning it) is tolerated: the next
// Get simply allocates a replacement.
type Pool[T any] struct {
	pool    []T
	factory func() T
}

// NewPool builds a cache primed with size items.
func NewPool[T any](size int, factory func() T) *Pool[T] {
	p := &Pool[T]{factory: factory}
	p.PutN(size)
	return p
}

// Get removes and returns a cached item, or makes a new one.
func (p *Pool[T]) Get() T {
	if n := len(p.pool); n > 0 {
		item := p.pool[n-1]
		p.pool = p.pool[:n-1]
		return item
	}
	return p.factory()
}

// Put returns an item to the cache.
func (p *Pool[T]) Put(item T) {
	p.pool = append(p.pool, item)
}

// PutN preallocates count fresh items.
func (p *Pool[T]) PutN(count int) {
	for i := 0; i < count; i++ {
		p.pool = append(p.pool, p.factory())
	}
}
