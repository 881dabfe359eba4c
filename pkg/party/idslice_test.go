package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSlice_GetIndex(t *testing.T) {
	tests := []struct {
		name        string
		partyIDs    IDSlice
		requestedID ID
		want        int
	}{
		{"empty", IDSlice{}, "a", -1},
		{"first", NewIDSlice([]ID{"b", "a", "c"}), "a", 0},
		{"last", NewIDSlice([]ID{"b", "a", "c"}), "c", 2},
		{"missing", NewIDSlice([]ID{"b", "a", "c"}), "d", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.partyIDs.GetIndex(tt.requestedID); got != tt.want {
				t.Errorf("GetIndex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIDSlice_Valid(t *testing.T) {
	assert.True(t, NewIDSlice([]ID{"c", "a", "b"}).Valid())
	assert.False(t, NewIDSlice([]ID{"a", "b", "a"}).Valid(), "duplicates")
	assert.False(t, NewIDSlice([]ID{"a", ""}).Valid(), "empty id")
	assert.False(t, IDSlice{"b", "a"}.Valid(), "unsorted")
}

func TestIDSlice_Contains(t *testing.T) {
	ids := NewIDSlice([]ID{"c", "a", "b"})
	assert.True(t, ids.Contains("a", "c"))
	assert.False(t, ids.Contains("a", "d"))
	assert.True(t, ids.Contains())
}

func TestNewIDSliceCopies(t *testing.T) {
	in := []ID{"b", "a"}
	_ = NewIDSlice(in)
	assert.Equal(t, []ID{"b", "a"}, in, "input must not be sorted in place")
}
