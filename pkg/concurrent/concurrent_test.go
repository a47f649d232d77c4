package concurrent

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	wp.Start(func(job int) int {
		return job * job
	})

	for i := 0; i < 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	got := make([]int, 0, 100)
	for res := range wp.CollectResults() {
		got = append(got, res)
	}
	sort.Ints(got)

	assert.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestPoolSchedule(t *testing.T) {
	p := NewPool(4, 4, 1)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		count int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		p.Schedule(func() {
			defer wg.Done()
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	wg.Wait()
	assert.Equal(t, 20, count)
}

func TestPoolScheduleTimeout(t *testing.T) {
	p := NewPool(1, 0, 0)

	block := make(chan struct{})
	defer close(block)
	assert.NoError(t, p.ScheduleTimeout(time.Second, func() { <-block }))

	// the only worker is busy and there is no queue
	assert.ErrorIs(t, p.ScheduleTimeout(10*time.Millisecond, func() {}), ErrScheduleTimeout)
}

func TestNewPoolRejectsDeadQueue(t *testing.T) {
	assert.Panics(t, func() { NewPool(1, 1, 0) })
	assert.Panics(t, func() { NewPool(1, 0, 2) })
}
