package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func square(i int) int { return i * i }

func TestParallelize(t *testing.T) {
	expected := make([]int, 100)
	for i := range expected {
		expected[i] = square(i)
	}

	pl := NewPool(4)
	defer pl.TearDown()
	assert.Equal(t, expected, Parallelize(pl, len(expected), square))

	var nilPool *Pool
	assert.Equal(t, expected, Parallelize(nilPool, len(expected), square), "nil pool runs on the current goroutine")
}

func TestParallelizeEmpty(t *testing.T) {
	pl := NewPool(0)
	defer pl.TearDown()
	assert.Empty(t, Parallelize(pl, 0, square))
}

func TestParallelizeShared(t *testing.T) {
	pl := NewPool(2)
	defer pl.TearDown()

	expected := make([]int, 50)
	for i := range expected {
		expected[i] = square(i)
	}

	var eg errgroup.Group
	for c := 0; c < 16; c++ {
		eg.Go(func() error {
			for round := 0; round < 20; round++ {
				if !assert.Equal(t, expected, Parallelize(pl, len(expected), square)) {
					return nil
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}
