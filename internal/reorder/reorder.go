package reorder

import "math"

// EndIndex maps a drop position to a slot: round(targetY/itemHeight)
// clamped to [0, n-1].
func EndIndex(targetY, itemHeight float64, n int) int {
	if n <= 0 || itemHeight <= 0 {
		return 0
	}
	end := int(math.Round(targetY / itemHeight))
	if end < 0 {
		return 0
	}
	if end > n-1 {
		return n - 1
	}
	return end
}

// Move drags items[start] to the slot under targetY. Out-of-range starts and
// drops back onto the same slot return an unchanged copy.
func Move[T any](items []T, start int, targetY, itemHeight float64) []T {
	if start < 0 || start >= len(items) || itemHeight <= 0 {
		return clone(items)
	}
	return MoveIndex(items, start, EndIndex(targetY, itemHeight, len(items)))
}

// MoveIndex removes the element at from and reinserts it at to in the
// shortened slice.
func MoveIndex[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return clone(items)
	}
	item := items[from]
	return Insert(Remove(items, from), to, item)
}

// Insert places item at index, clamped to [0, len(items)].
func Insert[T any](items []T, index int, item T) []T {
	if index < 0 {
		index = 0
	}
	if index > len(items) {
		index = len(items)
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, item)
	return append(out, items[index:]...)
}

func Remove[T any](items []T, index int) []T {
	if index < 0 || index >= len(items) {
		return clone(items)
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
