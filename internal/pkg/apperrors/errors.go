// Package apperrors предоставляет структурированные ошибки загрузчика.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// Позволяет grep по категориям: `grep "MODULE\."` для всех ошибок загрузки модулей.
const (
	// Category: CONFIG — ошибки загрузки и валидации конфигурации окружения.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: ARGS — ошибки разбора наборов аргументов командной строки.
	ErrArgsInvalidShape = "ARGS.INVALID_SHAPE"
	ErrArgsParse        = "ARGS.PARSE_FAILED"

	// Category: MODULE — локальные ошибки загрузки одного модуля.
	// Не прерывают поиск остальных модулей.
	ErrModuleShape        = "MODULE.SHAPE_VIOLATION"
	ErrModuleCapability   = "MODULE.CAPABILITY_MISSING"
	ErrModuleConstruction = "MODULE.CONSTRUCTION_FAILED"
	ErrModuleInit         = "MODULE.INIT_FAILED"

	// Category: ENTRYPOINT — фатальные ошибки разрешения точки входа.
	ErrEntryPointNotFound    = "ENTRYPOINT.NOT_FOUND"
	ErrEntryPointNotRunnable = "ENTRYPOINT.NOT_RUNNABLE"

	// Category: GRAPH — ошибки построения графа зависимостей и получения экземпляра.
	ErrGraphBuild  = "GRAPH.BUILD_FAILED"
	ErrGraphObtain = "GRAPH.OBTAIN_FAILED"

	// Category: BOOTSTRAP — необработанные сбои без собственного кода.
	ErrBootstrapPanic    = "BOOTSTRAP.PANIC"
	ErrBootstrapUncaught = "BOOTSTRAP.UNCAUGHT"
)

// AppError представляет структурированную ошибку приложения.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrModuleShape,
//	    "модуль должен иметь ровно один конструктор",
//	    nil)
type AppError struct {
	// Code — машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message — человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause — wrapped оригинальная ошибка.
	// Не сериализуется в JSON (может содержать детали реализации).
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Newf создаёт AppError без причины с форматированным сообщением.
func Newf(code, format string, args ...any) *AppError {
	return NewAppError(code, fmt.Sprintf(format, args...), nil)
}

// Code возвращает код первого AppError в цепочке ошибок.
// Пустая строка если AppError в цепочке нет.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode проверяет, содержит ли цепочка ошибок AppError с указанным кодом.
// В отличие от Code() просматривает все AppError в цепочке, а не только первый.
func HasCode(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}
