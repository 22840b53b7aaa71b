package strpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternSharesID(t *testing.T) {
	p := New()

	a := p.Intern("alice")
	b := p.Intern("alice")
	c := p.Intern("bob")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, p.RefCount(a))
	assert.Equal(t, 1, p.RefCount(c))
	assert.Equal(t, 2, p.Len())
}

func TestReleaseRemovesAtZero(t *testing.T) {
	p := New()

	id := p.Intern("x")
	p.Intern("x")

	p.Release(id)
	v, ok := p.Resolve(id)
	require.True(t, ok, "string must survive while one reference remains")
	assert.Equal(t, "x", v)

	p.Release(id)
	_, ok = p.Resolve(id)
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())

	// Re-interning after removal allocates a fresh id.
	again := p.Intern("x")
	assert.NotEqual(t, id, again)
	assert.Equal(t, 1, p.RefCount(again))
}

func TestReleaseUnknownIsNoop(t *testing.T) {
	p := New()
	id := p.Intern("keep")

	p.Release(id + 100)
	p.Release(0)

	assert.Equal(t, 1, p.RefCount(id))
	_, ok := p.Resolve(12345)
	assert.False(t, ok)
}

func TestEmptyStringIsInterned(t *testing.T) {
	p := New()
	id := p.Intern("")
	v, ok := p.Resolve(id)
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestConcurrentIntern(t *testing.T) {
	p := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Intern("shared")
			}
		}()
	}
	wg.Wait()

	id := p.Intern("shared")
	assert.Equal(t, 801, p.RefCount(id))
	assert.Equal(t, 1, p.Len())
}
