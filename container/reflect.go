package container

import "reflect"

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func typeNameOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
