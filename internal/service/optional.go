package service

// Optional carries the tri-state of a partial-update field: omitted,
// explicitly null, or set to a value. A plain pointer cannot tell the
// first two apart, and the update contract needs all three.
type Optional[T any] struct {
	set   bool
	valid bool
	value T
}

func Value[T any](v T) Optional[T] {
	return Optional[T]{set: true, valid: true, value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field was present in the input at all.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was present as an explicit null.
func (o Optional[T]) IsNull() bool { return o.set && !o.valid }

// Get returns the value and whether a non-null value was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && o.valid
}

// apply writes the field into a column map: a value sets the column,
// an explicit null clears it, absence leaves the map untouched.
func (o Optional[T]) apply(updates map[string]interface{}, column string) {
	if !o.set {
		return
	}
	if !o.valid {
		updates[column] = nil
		return
	}
	updates[column] = o.value
}
