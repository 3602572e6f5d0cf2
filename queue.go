package preview

import "sync"

// queue is the FIFO of accepted requests. push is safe from any goroutine;
// drain hands the whole backlog to the scheduler at once.
type queue struct {
	mu    sync.Mutex
	items []Request
}

func (q *queue) push(r Request) {
	q.mu.Lock()
	q.items = append(q.items, r)
	q.mu.Unlock()
}

func (q *queue) drain() []Request {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
