package util

// Stack is a LIFO over a slice. The zero value is empty and ready to use.
type Stack[T any] []T

// Push adds items so that the last one is popped first.
func (s *Stack[T]) Push(items ...T) {
	*s = append(*s, items...)
}

// Pop removes the top item. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	n := len(*s)
	if n == 0 {
		return item, false
	}
	item = (*s)[n-1]
	*s = (*s)[:n-1]
	return item, true
}
