package utils

import (
	"reflect"
	"testing"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{"even split", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"remainder", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"oversized chunk", []int{1, 2}, 10, [][]int{{1, 2}}},
		{"size one", []int{1, 2, 3}, 1, [][]int{{1}, {2}, {3}}},
		{"invalid size", []int{1, 2, 3}, 0, [][]int{{1, 2, 3}}},
		{"empty", nil, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.items, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Chunk(%v, %d) = %v, want %v", tt.items, tt.size, got, tt.want)
			}
		})
	}
}

func TestChunkDoesNotMutateInput(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	Chunk(items, 2)
	if !reflect.DeepEqual(items, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("input slice was mutated: %v", items)
	}
}
