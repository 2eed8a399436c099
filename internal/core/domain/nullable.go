package domain

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field that tells an absent key from an explicit null.
// Set is true once the key was supplied; Value is nil when it was null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some is a supplied, non-null value.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null is a supplied null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON only runs when the key is present, which is what marks it Set.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) clone() *T {
	if n.Value == nil {
		return nil
	}
	v := *n.Value
	return &v
}
