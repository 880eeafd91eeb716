// Утилитарные функции общего назначения
package utils

// Ptr возвращает указатель на копию v. Удобно для partial update (TaskPatch).
func Ptr[T any](v T) *T {
	return &v
}

func StrPtr(s string) *string {
	return &s
}

