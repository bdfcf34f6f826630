// Package argsassert проверяет наборы аргументов внутри провайдеров модулей.
//
// При первой неудачной проверке в вывод (по умолчанию stdout) печатается
// диагностика с описанием флагов набора, а провайдер получает
// *ValidationError. Загрузчик распознаёт эту ошибку и завершается с кодом 1
// без стека и без записи в лог: пользователь уже увидел, чего не хватает.
//
//	b.Provide(func(a *Args) (Name, error) {
//	    if err := argsassert.For(a).
//	        NotNil(a.Name, "--name is required").
//	        That(a.Name == nil || len(*a.Name) >= 3, "--name needs 3+ chars").
//	        Err(); err != nil {
//	        return "", err
//	    }
//	    return Name(*a.Name), nil
//	})
package argsassert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/Kargones/plugrun/internal/argparse"

	"go.uber.org/dig"
)

// Тексты диагностики.
const (
	TextErrorIntro          = "Insufficient startup arguments"
	TextGenericError        = "A requested argument is invalid"
	TextIsNullError         = "A requested argument is null"
	TextStringNullOrEmpty   = "A requested string is null or empty"
	TextIntroForParams      = "The *subset* of related arguments that might get requested at runtime"
	TextFileNullNonExisting = "The provided file/directory is null or does not exist"
	TextFileNoDir           = "The provided file reference is not a directory"

	separator = "\n-------------------------\n\n"
)

// ValidationError — намеренный отказ из-за недостаточных аргументов.
type ValidationError struct {
	// Kind — одна из констант Text*Error.
	Kind string
	// Hint — подсказка, переданная в проверку.
	Hint string
	// Bundle — тип проверенного набора.
	Bundle reflect.Type
}

// Error реализует error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", TextErrorIntro, e.Kind, e.Hint)
}

// IsValidationFailure сообщает, является ли err (или его причина внутри
// ошибок DI графа) ошибкой ValidationError.
func IsValidationFailure(err error) bool {
	if err == nil {
		return false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	// ошибка графа может быть обёрнута, RootCause применяется на каждом уровне
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errors.As(dig.RootCause(e), &ve) {
			return true
		}
	}
	return false
}

var (
	outMu sync.Mutex
	out   io.Writer
)

// SetOutput задаёт вывод диагностики и возвращает предыдущий.
// nil означает текущий os.Stdout.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

func output() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	if out == nil {
		return os.Stdout
	}
	return out
}

// Chain — цепочка проверок одного набора. После первой неудачи
// остальные проверки не выполняются.
type Chain struct {
	bundle any
	err    error
}

// For начинает цепочку проверок набора bundle.
func For(bundle any) *Chain {
	return &Chain{bundle: bundle}
}

// NotNil проверяет, что значение не nil (включая nil указатели, срезы и map).
func (c *Chain) NotNil(value any, hint string) *Chain {
	if c.err == nil && isNil(value) {
		c.fail(TextIsNullError, hint)
	}
	return c
}

// That проверяет произвольное условие.
func (c *Chain) That(ok bool, hint string) *Chain {
	if c.err == nil && !ok {
		c.fail(TextGenericError, hint)
	}
	return c
}

// NotEmpty проверяет строку: string или *string, не nil и не пустая.
func (c *Chain) NotEmpty(value any, hint string) *Chain {
	if c.err == nil && isEmptyString(value) {
		c.fail(TextStringNullOrEmpty, hint)
	}
	return c
}

// DirExists проверяет, что путь (string или *string) указывает на существующую директорию.
func (c *Chain) DirExists(path any, hint string) *Chain {
	if c.err != nil {
		return c
	}
	p, ok := stringValue(path)
	if !ok || p == "" {
		c.fail(TextFileNullNonExisting, hint)
		return c
	}
	info, err := os.Stat(p)
	switch {
	case err != nil:
		c.fail(TextFileNullNonExisting, hint)
	case !info.IsDir():
		c.fail(TextFileNoDir, hint)
	}
	return c
}

// Err возвращает результат цепочки: nil, *ValidationError или обычную
// ошибку, если для набора невозможно построить описание флагов.
func (c *Chain) Err() error {
	return c.err
}

// NotNil — одиночная проверка, см. Chain.NotNil.
func NotNil(bundle, value any, hint string) error {
	return For(bundle).NotNil(value, hint).Err()
}

// That — одиночная проверка, см. Chain.That.
func That(bundle any, ok bool, hint string) error {
	return For(bundle).That(ok, hint).Err()
}

// NotEmpty — одиночная проверка, см. Chain.NotEmpty.
func NotEmpty(bundle, value any, hint string) error {
	return For(bundle).NotEmpty(value, hint).Err()
}

// DirExists — одиночная проверка, см. Chain.DirExists.
func DirExists(bundle, path any, hint string) error {
	return For(bundle).DirExists(path, hint).Err()
}

func (c *Chain) fail(kind, hint string) {
	usage, err := argparse.Usage(c.bundle)
	if err != nil {
		c.err = fmt.Errorf("cannot describe arguments of %T: %w", c.bundle, err)
		return
	}

	var sb strings.Builder
	sb.WriteString(separator)
	fmt.Fprintf(&sb, "%s:\n-> %s (%s)\n\n", TextErrorIntro, kind, hint)
	sb.WriteString(TextIntroForParams + ":\n")
	if usage == "" {
		sb.WriteString("  (none)\n")
	} else {
		sb.WriteString(usage)
	}
	sb.WriteString(separator)
	_, _ = io.WriteString(output(), sb.String()) //nolint:errcheck // диагностика пользователю

	c.err = &ValidationError{Kind: kind, Hint: hint, Bundle: reflect.TypeOf(c.bundle)}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func stringValue(value any) (string, bool) {
	switch s := value.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	}
	return "", false
}

func isEmptyString(value any) bool {
	s, ok := stringValue(value)
	return !ok || s == ""
}
