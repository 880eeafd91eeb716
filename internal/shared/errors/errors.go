// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в storage, repository и service слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустой title, неизвестный priority, неправильный email и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например username или email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден (или принадлежит другому пользователю)
	ErrNotFound = errors.New("not found")
	// Запись коллекции на диск/в бд не завершилась
	ErrPersistence = errors.New("persistence failure")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// только для задач
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrUnknownPriority = errors.New("unknown priority")
	ErrUserIDEmpty     = errors.New("user id cannot be empty")
)
