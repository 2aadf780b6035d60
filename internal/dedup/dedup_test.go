package dedup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Add(t *testing.T) {
	s := NewSet[string](0)
	assert.False(t, s.Add("a"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	assert.Equal(t, 2, s.Len())
}

func TestExact_KeepsFirstOnly(t *testing.T) {
	f := NewExact()
	keys := []string{"AAAAGGG", "CCCCTTT", "AAAAGGG", "AAAAGGG", "CCCCTTT", "AAAAGGA"}
	var kept []int
	for i, k := range keys {
		if f.Keep(k) {
			kept = append(kept, i)
		}
	}
	assert.Equal(t, []int{0, 1, 5}, kept)
	assert.Equal(t, 3, f.Len())
}

func TestExact_ManyDistinct(t *testing.T) {
	f := NewExact()
	for i := 0; i < 100_000; i++ {
		assert.True(t, f.Keep(fmt.Sprintf("K%08d", i)))
	}
	for i := 0; i < 100_000; i += 997 {
		assert.False(t, f.Keep(fmt.Sprintf("K%08d", i)))
	}
	assert.Equal(t, 100_000, f.Len())
}

func TestKeepAll(t *testing.T) {
	var f Filter = KeepAll{}
	for i := 0; i < 3; i++ {
		assert.True(t, f.Keep("same"))
	}
	assert.Equal(t, 0, f.Len())
}

func TestNew(t *testing.T) {
	assert.IsType(t, &Exact{}, New(true))
	assert.IsType(t, KeepAll{}, New(false))
}
