package debounce_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/debounce"

	"github.com/stretchr/testify/assert"
)

func TestGate_LastCallWins(t *testing.T) {
	g := debounce.New(50 * time.Millisecond)
	ctx := context.Background()

	results := make([]bool, 3)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := g.Wait(ctx, "s1|employees")
			assert.NoError(t, err)
			results[i] = ok
		}(i)
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, []bool{false, false, true}, results)
	assert.Zero(t, g.Pending())
}

func TestGate_KeysAreIndependent(t *testing.T) {
	g := debounce.New(20 * time.Millisecond)
	ctx := context.Background()

	var a, b bool
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); a, _ = g.Wait(ctx, "s1|employees") }()
	go func() { defer wg.Done(); b, _ = g.Wait(ctx, "s2|employees") }()
	wg.Wait()

	assert.True(t, a)
	assert.True(t, b)
}

func TestGate_Cancelled(t *testing.T) {
	g := debounce.New(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := g.Wait(ctx, "s1|employees")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, g.Pending())
}

func TestNew_DefaultDelay(t *testing.T) {
	assert.Equal(t, debounce.DefaultDelay, debounce.New(0).Delay())
}
