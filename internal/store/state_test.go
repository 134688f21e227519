package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSet_AddIsIdempotent(t *testing.T) {
	s := IndexSet{}
	assert.True(t, s.Add(2))
	assert.False(t, s.Add(2))
	assert.Equal(t, 1, s.Len())
}

func TestIndexSet_WithoutIndex(t *testing.T) {
	// sentences ["a","b","c"], revealed {0,2}, remove 1 -> revealed {0,1}
	got := NewIndexSet(0, 2).WithoutIndex(1)
	assert.Equal(t, []int{0, 1}, got.Sorted())

	// removing a revealed index drops it
	got = NewIndexSet(0, 1, 3).WithoutIndex(1)
	assert.Equal(t, []int{0, 2}, got.Sorted())

	// nothing above the removed index
	got = NewIndexSet(0, 1).WithoutIndex(5)
	assert.Equal(t, []int{0, 1}, got.Sorted())
}

func TestIndexSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewIndexSet(5, 1, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,3,5]`, string(data))

	var s IndexSet
	require.NoError(t, json.Unmarshal([]byte(`[4,4,0]`), &s))
	assert.Equal(t, []int{0, 4}, s.Sorted())
}

func TestState_CloneIsDeep(t *testing.T) {
	five := 5
	orig := State{
		Sentences:  []string{"a"},
		Revealed:   NewIndexSet(0),
		ChosenTime: &five,
	}
	c := orig.Clone()
	c.Sentences[0] = "z"
	c.Revealed.Add(3)
	*c.ChosenTime = 9

	assert.Equal(t, "a", orig.Sentences[0])
	assert.False(t, orig.Revealed.Has(3))
	assert.Equal(t, 5, *orig.ChosenTime)
	assert.Nil(t, c.RemainingSeconds)
}

func TestDefaultIsEmpty(t *testing.T) {
	assert.True(t, Default().IsEmpty())
}
