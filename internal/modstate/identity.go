package modstate

import (
	"fmt"
	"reflect"
)

// sameMap reports whether a and b share the same underlying map.
func sameMap(a, b Slice) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
