package reorder

import (
	"reflect"
	"testing"
)

func TestEndIndex(t *testing.T) {
	cases := []struct {
		y, h float64
		n    int
		want int
	}{
		{0, 50, 4, 0},
		{74, 50, 4, 1},
		{75, 50, 4, 2},
		{-40, 50, 4, 0},
		{1000, 50, 4, 3},
		{10, 0, 4, 0},
	}
	for _, tc := range cases {
		if got := EndIndex(tc.y, tc.h, tc.n); got != tc.want {
			t.Fatalf("EndIndex(%v, %v, %d) = %d, want %d", tc.y, tc.h, tc.n, got, tc.want)
		}
	}
}

func TestMoveSameSlotIsNoop(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	got := Move(in, 1, 60, 50)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("expected unchanged, got %v", got)
	}
	got[0] = "z"
	if in[0] != "a" {
		t.Fatal("move returned the input slice")
	}
}

func TestMoveLeftRotation(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	got := Move(in, 0, 150, 50)
	if want := []string{"b", "c", "d", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(in, want) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestMoveUpward(t *testing.T) {
	got := Move([]int{1, 2, 3, 4}, 3, 20, 50)
	if want := []int{4, 1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMoveOutOfRangeStart(t *testing.T) {
	in := []int{1, 2, 3}
	for _, start := range []int{-1, 3, 10} {
		if got := Move(in, start, 0, 50); !reflect.DeepEqual(got, in) {
			t.Fatalf("start %d: got %v", start, got)
		}
	}
	if got := Move([]int{}, 0, 0, 50); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestInsertAndRemove(t *testing.T) {
	got := Insert([]int{1, 3}, 1, 2)
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("insert: got %v", got)
	}
	got = Insert(got, 99, 4)
	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("insert clamp: got %v", got)
	}
	got = Remove(got, 0)
	if want := []int{2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("remove: got %v", got)
	}
	if out := Remove(got, 5); !reflect.DeepEqual(out, got) {
		t.Fatalf("remove out of range: got %v", out)
	}
}
