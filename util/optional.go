package util

//*******************************************
// optional
//*******************************************

// Optional holds either a value or nothing.
type Optional[T any] struct {
	Value     T
	has_value bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{
		Value:     value,
		has_value: true,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.has_value
}

// ValueOr returns the held value or def if there is none.
func (self Optional[T]) ValueOr(def T) T {
	if self.has_value {
		return self.Value
	}
	return def
}
