package indexer

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
)

func TestLogQueue_PushAndPop(t *testing.T) {
	queue := NewLogQueue()

	// Logs from two contracts, interleaved out of order
	queue.PushLogs(
		types.Log{BlockNumber: 12, Index: 0},
		types.Log{BlockNumber: 10, Index: 7},
		types.Log{BlockNumber: 10, Index: 2},
	)

	// Verify queue size
	if queue.Size() != 3 {
		t.Errorf("Expected queue size 3, got %d", queue.Size())
	}

	// Pop logs - should come out in chain order
	popped1, _ := queue.PopLog()
	if popped1.BlockNumber != 10 || popped1.Index != 2 {
		t.Errorf("Expected first log 10/2, got %d/%d", popped1.BlockNumber, popped1.Index)
	}

	popped2, _ := queue.PopLog()
	if popped2.BlockNumber != 10 || popped2.Index != 7 {
		t.Errorf("Expected second log 10/7, got %d/%d", popped2.BlockNumber, popped2.Index)
	}

	popped3, _ := queue.PopLog()
	if popped3.BlockNumber != 12 {
		t.Errorf("Expected third log in block 12, got %d", popped3.BlockNumber)
	}

	// Queue should be empty
	if queue.Size() != 0 {
		t.Errorf("Expected empty queue, got size %d", queue.Size())
	}

	// Pop from empty queue should report empty
	if _, ok := queue.PopLog(); ok {
		t.Error("Expected empty pop from empty queue")
	}
}

func TestLogQueue_Peek(t *testing.T) {
	queue := NewLogQueue()

	// Peek empty queue
	if _, ok := queue.Peek(); ok {
		t.Error("Expected nothing from empty queue peek")
	}

	queue.PushLogs(types.Log{BlockNumber: 20, Index: 1}, types.Log{BlockNumber: 5, Index: 9})

	// Peek should return earliest log without removing
	peeked, _ := queue.Peek()
	if peeked.BlockNumber != 5 {
		t.Errorf("Expected peek block 5, got %d", peeked.BlockNumber)
	}

	// Size should remain unchanged
	if queue.Size() != 2 {
		t.Errorf("Expected queue size 2 after peek, got %d", queue.Size())
	}
}

func TestLogQueue_Drain(t *testing.T) {
	queue := NewLogQueue()
	queue.PushLogs(
		types.Log{BlockNumber: 3, Index: 1},
		types.Log{BlockNumber: 1, Index: 4},
		types.Log{BlockNumber: 3, Index: 0},
		types.Log{BlockNumber: 2, Index: 0},
	)

	drained := queue.Drain()
	want := [][2]uint64{{1, 4}, {2, 0}, {3, 0}, {3, 1}}
	if len(drained) != len(want) {
		t.Fatalf("Expected %d logs, got %d", len(want), len(drained))
	}
	for i, l := range drained {
		if l.BlockNumber != want[i][0] || uint64(l.Index) != want[i][1] {
			t.Errorf("log %d: expected %v, got %d/%d", i, want[i], l.BlockNumber, l.Index)
		}
	}
	if queue.Size() != 0 {
		t.Errorf("Expected empty queue after drain, got size %d", queue.Size())
	}
}

func TestLogQueue_Concurrent(t *testing.T) {
	queue := NewLogQueue()
	done := make(chan bool)

	// Producer goroutine
	go func() {
		for i := 0; i < 100; i++ {
			queue.PushLogs(types.Log{BlockNumber: uint64(i), Index: uint(i % 3)})
			time.Sleep(time.Microsecond)
		}
		done <- true
	}()

	// Consumer goroutine
	go func() {
		count := 0
		for count < 100 {
			if _, ok := queue.PopLog(); ok {
				count++
			}
			time.Sleep(time.Microsecond)
		}
		done <- true
	}()

	// Wait for both goroutines
	<-done
	<-done

	// Queue should be empty
	if queue.Size() != 0 {
		t.Errorf("Expected empty queue after concurrent operations, got size %d", queue.Size())
	}
}
