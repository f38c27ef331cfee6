package eventqueue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasic(t *testing.T) {
	t.Run("order", func(t *testing.T) {
		q := New[string]()
		require.EqualValues(t, 0, q.Len())
		q.Post("one")
		q.Post("two")
		require.EqualValues(t, 2, q.Len())

		e, ok := q.pop()
		require.True(t, ok)
		require.EqualValues(t, "one", e)
		e, ok = q.pop()
		require.True(t, ok)
		require.EqualValues(t, "two", e)
		require.EqualValues(t, 0, q.Len())
	})
	t.Run("consume drains after close", func(t *testing.T) {
		q := New[int]()
		for i := 0; i < 10; i++ {
			q.Post(i)
		}
		q.Close()

		got := make([]int, 0)
		q.Consume(func(e int) {
			got = append(got, e)
		})
		require.EqualValues(t, 10, len(got))
		for i, e := range got {
			require.EqualValues(t, i, e)
		}
	})
	t.Run("post to closed panics", func(t *testing.T) {
		q := New[int]()
		q.Close()
		require.Panics(t, func() {
			q.Post(1)
		})
	})
}

func TestConcurrent(t *testing.T) {
	const (
		numProducers   = 10
		numPerProducer = 1000
	)
	q := New[int]()

	var wgProducers sync.WaitGroup
	wgProducers.Add(numProducers)
	for i := 0; i < numProducers; i++ {
		go func() {
			defer wgProducers.Done()
			for j := 0; j < numPerProducer; j++ {
				q.Post(j)
			}
		}()
	}

	var consumed int
	done := make(chan struct{})
	go func() {
		q.Consume(func(int) {
			consumed++
		})
		close(done)
	}()

	wgProducers.Wait()
	q.Close()
	<-done
	require.EqualValues(t, numProducers*numPerProducer, consumed)
}
