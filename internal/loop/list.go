package loop

// Direction is the way a list cursor moves.
type Direction string

const (
	// DirectionNext moves the cursor towards the end of the list.
	DirectionNext Direction = "next"
	// DirectionPrevious moves the cursor towards the start of the list.
	DirectionPrevious Direction = "previous"
)

// List is an ordered sequence with an optional selection cursor.
// The cursor is either absent or a valid index.
type List[T any] struct {
	items    []T
	selected int
}

// NewList returns a list over items with the first item selected.
func NewList[T any](items []T) List[T] {
	l := List[T]{selected: -1}
	l.Replace(items)
	return l
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	if len(l.items) == 0 {
		return nil
	}
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the item at index i.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// Selected returns the cursor position, or false when nothing is selected.
func (l *List[T]) Selected() (int, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		return 0, false
	}
	return l.selected, true
}

// SelectedItem returns the item under the cursor.
func (l *List[T]) SelectedItem() (T, bool) {
	i, ok := l.Selected()
	if !ok {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Select moves the cursor to i. Out of range indices are rejected.
func (l *List[T]) Select(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.selected = i
	return true
}

// Navigate moves the cursor one step. Movement stops at either end. With no
// selection, moving selects the first item.
func (l *List[T]) Navigate(dir Direction) {
	if len(l.items) == 0 {
		l.selected = -1
		return
	}
	if _, ok := l.Selected(); !ok {
		l.selected = 0
		return
	}
	switch dir {
	case DirectionNext:
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	case DirectionPrevious:
		if l.selected > 0 {
			l.selected--
		}
	}
}

// DeleteSelected removes the item under the cursor. The cursor stays on the
// same index, moves back one when the last item was removed, and is cleared
// when the list becomes empty.
func (l *List[T]) DeleteSelected() (T, bool) {
	var zero T
	i, ok := l.Selected()
	if !ok {
		return zero, false
	}
	removed := l.items[i]
	n := len(l.items)
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	switch {
	case n == 1:
		l.selected = -1
	case i == n-1:
		l.selected = n - 2
	}
	return removed, true
}

// Append adds item at the end and selects it.
func (l *List[T]) Append(item T) {
	l.items = append(l.items, item)
	l.selected = len(l.items) - 1
}

// Set replaces the item at index i.
func (l *List[T]) Set(i int, item T) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = item
	return true
}

// Replace swaps in a new set of items. The first item is selected when there
// is one.
func (l *List[T]) Replace(items []T) {
	l.items = nil
	if len(items) > 0 {
		l.items = make([]T, len(items))
		copy(l.items, items)
		l.selected = 0
		return
	}
	l.selected = -1
}

// clone returns an independent copy of the list.
func (l List[T]) clone() List[T] {
	return List[T]{items: l.Items(), selected: l.selected}
}
