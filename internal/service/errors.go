package service

import "errors"

// Виды ошибок сервисного слоя. Репозитории и сервисы оборачивают их через
// fmt.Errorf("...: %w", ...), HTTP-слой сопоставляет через errors.Is.
var (
	// ErrNotFound - сущность с указанным id не существует
	ErrNotFound = errors.New("not found")

	// ErrConflict - нарушено предусловие перехода состояния (например, единица не idle)
	ErrConflict = errors.New("conflict")

	// ErrValidation - входные данные вне допустимого диапазона или неразбираемы
	ErrValidation = errors.New("validation failed")
)
