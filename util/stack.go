// Package util holds small containers shared by the category parser.
package util

// Stack is a LIFO over a slice. The zero value is an empty stack.
type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v A) {
	s.items = append(s.items, v)
}

// Peek returns the top of the stack without removing it
func (s *Stack[A]) Peek() (top A, ok bool) {
	if len(s.items) == 0 {
		return top, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack[A]) Pop() (top A, ok bool) {
	top, ok = s.Peek()
	if ok {
		s.items = s.items[:len(s.items)-1]
	}
	return top, ok
}

func (s *Stack[A]) Len() int { return len(s.items) }
