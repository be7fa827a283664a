package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON field that records whether it was present in the
// payload. A present field may still be null; Null distinguishes an explicit
// null from a supplied value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an Optional that was supplied as an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON marks the field as present and decodes its value.
// Absent fields never reach UnmarshalJSON, so Set stays false for them.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Get returns the value and true when the field was supplied with a non-null value.
func (o Optional[T]) Get() (T, bool) {
	if !o.Set || o.Null {
		var zero T
		return zero, false
	}
	return o.Value, true
}

// Ptr returns a pointer to the value, or nil when the field is absent or null.
func (o Optional[T]) Ptr() *T {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}

// TaskPatch lists the fields a partial update supplies.
//
// Title and Completed are applied only when supplied with a value; an explicit
// null for them is treated as absent because neither column is nullable.
// Description is nullable, so an explicit null clears it.
type TaskPatch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Completed   Optional[bool]   `json:"completed"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	_, hasTitle := p.Title.Get()
	_, hasCompleted := p.Completed.Get()
	return !hasTitle && !hasCompleted && !p.Description.Set
}

// Validate rejects a supplied empty title.
func (p TaskPatch) Validate() error {
	if title, ok := p.Title.Get(); ok && title == "" {
		return ErrEmptyTaskTitle
	}
	return nil
}
