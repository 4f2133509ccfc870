package indexer

import (
	"container/heap"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"
)

// LogQueue is a priority queue of logs in canonical chain order (block number, then log index)
type LogQueue struct {
	items []types.Log
	mu    sync.RWMutex
}

// NewLogQueue creates a new priority queue
func NewLogQueue() *LogQueue {
	q := &LogQueue{
		items: make([]types.Log, 0),
	}
	heap.Init(q)
	return q
}

// Len returns the number of items in the queue
func (q *LogQueue) Len() int {
	return len(q.items)
}

// Less orders by block number, then by log index within the block
func (q *LogQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.BlockNumber != b.BlockNumber {
		return a.BlockNumber < b.BlockNumber
	}
	return a.Index < b.Index
}

// Swap swaps two items in the queue
func (q *LogQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

// Push adds an item to the queue
func (q *LogQueue) Push(x interface{}) {
	q.items = append(q.items, x.(types.Log))
}

// Pop removes and returns the last item of the heap slice
func (q *LogQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[0 : n-1]
	return item
}

// PushLogs adds logs to the queue (thread-safe)
func (q *LogQueue) PushLogs(logs ...types.Log) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, l := range logs {
		heap.Push(q, l)
	}
}

// PopLog removes and returns the earliest log; ok is false on an empty queue (thread-safe)
func (q *LogQueue) PopLog() (types.Log, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Len() == 0 {
		return types.Log{}, false
	}
	return heap.Pop(q).(types.Log), true
}

// Peek returns the earliest log without removing it (thread-safe)
func (q *LogQueue) Peek() (types.Log, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.Len() == 0 {
		return types.Log{}, false
	}
	return q.items[0], true
}

// Size returns the number of items in the queue (thread-safe)
func (q *LogQueue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.Len()
}

// Drain pops every log in order (thread-safe)
func (q *LogQueue) Drain() []types.Log {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]types.Log, 0, q.Len())
	for q.Len() > 0 {
		out = append(out, heap.Pop(q).(types.Log))
	}
	return out
}
