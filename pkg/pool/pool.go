package pool

import "runtime"

// command is used to trigger our latent workers to do something.
type command struct {
	// This is the index we evaluate our function at
	i int
	// f stores its own result, so that workers stay agnostic of the result type
	f func(int)
	// done belongs to a single Parallelize call, and has room for all of its results.
	done chan<- struct{}
}

// worker starts up a new worker, listening to commands, and producing results
func worker(commands <-chan command) {
	for c := range commands {
		c.f(c.i)
		c.done <- struct{}{}
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current thread instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each new operation.
type Pool struct {
	// The common channel used to send commands to the workers.
	//
	// This effectively makes a work stealing pool.
	commands chan command
	// This holds the number of workers we've created
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	var p Pool

	if count <= 0 {
		count = runtime.NumCPU()
	}

	p.commands = make(chan command)
	p.workerCount = count

	for i := 0; i < count; i++ {
		go worker(p.commands)
	}

	return &p
}

// TearDown cleanly tears down a pool, closing channels, etc.
func (p *Pool) TearDown() {
	close(p.commands)
}

// Parallelize calls a function count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
// Several goroutines may share a pool; each call only waits for its own results.
func Parallelize[T any](p *Pool, count int, f func(int) T) []T {
	results := make([]T, count)
	store := func(i int) { results[i] = f(i) }

	if p == nil {
		for i := 0; i < count; i++ {
			store(i)
		}
		return results
	}

	done := make(chan struct{}, count)
	for i := 0; i < count; i++ {
		p.commands <- command{i: i, f: store, done: done}
	}
	for i := 0; i < count; i++ {
		<-done
	}

	return results
}
