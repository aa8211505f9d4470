package streamstats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Optional holds a telemetry field that may be missing from a snapshot. The
// zero value is unset. A JSON null or an omitted key decodes to unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field was present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// ValueOr returns the value, or fallback when unset.
func (o Optional[T]) ValueOr(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

// String renders the value with fmt, or "" when unset.
func (o Optional[T]) String() string {
	if !o.set {
		return ""
	}
	return fmt.Sprint(o.value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
