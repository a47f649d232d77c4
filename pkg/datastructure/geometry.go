package datastructure

import (
	"golang.org/x/exp/constraints"
)

const (
	EPS = 1e-6
)

// less than operator
func Lt[T constraints.Float](a, b T) bool {
	return a+EPS < b
}

func Gt[T constraints.Float](a, b T) bool {
	return Lt(b, a)
}
