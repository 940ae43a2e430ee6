package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_GetSet(t *testing.T) {
	c := NewCell(1)
	assert.Equal(t, 1, c.Get())

	c.Set(5)
	assert.Equal(t, 5, c.Get())
}

func TestCell_SubscribeOrderAndUnsubscribe(t *testing.T) {
	c := NewCell("")
	var got []string

	unsubA := c.Subscribe(func(v string) { got = append(got, "a:"+v) })
	c.Subscribe(func(v string) { got = append(got, "b:"+v) })

	c.Set("x")
	unsubA()
	c.Set("y")
	unsubA()

	assert.Equal(t, []string{"a:x", "b:x", "b:y"}, got)
}

func TestCell_Update(t *testing.T) {
	c := NewCell(10)
	var notified int
	c.Subscribe(func(v int) { notified = v })

	got := c.Update(func(v int) int { return v + 1 })

	assert.Equal(t, 11, got)
	assert.Equal(t, 11, c.Get())
	assert.Equal(t, 11, notified)
}

func TestCell_ConcurrentUpdate(t *testing.T) {
	c := NewCell(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Update(func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, c.Get())
}
