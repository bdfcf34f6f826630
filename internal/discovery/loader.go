package discovery

import (
	"fmt"
	"reflect"

	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/pkg/apperrors"
	"github.com/Kargones/plugrun/internal/pkg/metrics"
	"github.com/Kargones/plugrun/internal/registry"
)

var (
	moduleType = reflect.TypeOf((*inject.Module)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// moduleCapability — имя возможности, которую должен реализовать модуль.
const moduleCapability = "inject.Module"

// LoadModule создаёт модуль по дескриптору. Отказ возвращается как
// *apperrors.AppError с кодом MODULE.* и пишется в лог; для поиска
// модулей он не фатален.
func (s *Session) LoadModule(d registry.Descriptor) (inject.Module, error) {
	s.logger.Debug("loading module", "module", d.Name)

	m, err := s.loadModule(d)
	if err != nil {
		s.metrics.RecordModule(d.Name, metrics.StatusRejected)
		return nil, err
	}
	s.metrics.RecordModule(d.Name, metrics.StatusLoaded)
	return m, nil
}

func (s *Session) loadModule(d registry.Descriptor) (inject.Module, error) {
	if n := len(d.Constructors); n != 1 {
		s.logger.Error("module must have exactly one constructor",
			"module", d.Name,
			"constructors", n,
		)
		return nil, apperrors.Newf(apperrors.ErrModuleShape,
			"%s should have exactly one constructor, but has %d", d.Name, n)
	}

	ctor := d.Constructors[0]
	ft := ctor.Type()
	if !validResults(ft) || ft.IsVariadic() {
		s.logger.Error("module constructor has unsupported shape",
			"module", d.Name,
			"constructor", ft.String(),
		)
		return nil, apperrors.Newf(apperrors.ErrModuleShape,
			"%s: constructor %s must be func(bundles...) (T) or (T, error)", d.Name, ft)
	}

	if !ft.Out(0).Implements(moduleType) {
		s.logger.Error("module does not implement capability",
			"module", d.Name,
			"capability", moduleCapability,
		)
		return nil, apperrors.Newf(apperrors.ErrModuleCapability,
			"%s does not implement %s", d.Name, moduleCapability)
	}

	args := make([]reflect.Value, ft.NumIn())
	for i := range args {
		v, err := s.ResolveArgs(ft.In(i))
		if err != nil {
			s.logger.Error("failed to initialize module",
				"module", d.Name,
				"kind", fmt.Sprintf("%T", err),
				"message", err.Error(),
			)
			return nil, apperrors.NewAppError(apperrors.ErrModuleInit,
				"cannot resolve arguments of "+d.Name, err)
		}
		args[i] = v
	}

	m, err := construct(ctor, args)
	if err != nil {
		s.logger.Error("construction of module failed",
			"module", d.Name,
			"cause_kind", fmt.Sprintf("%T", err.cause),
			"cause_message", err.message,
		)
		return nil, apperrors.NewAppError(apperrors.ErrModuleConstruction,
			"construction of "+d.Name+" failed", err)
	}

	if isNilModule(m) {
		s.logger.Error("failed to initialize module",
			"module", d.Name,
			"kind", "nil",
			"message", "constructor returned nil",
		)
		return nil, apperrors.Newf(apperrors.ErrModuleInit, "constructor of %s returned nil", d.Name)
	}

	return m.Interface().(inject.Module), nil
}

func validResults(ft reflect.Type) bool {
	switch ft.NumOut() {
	case 1:
		return true
	case 2:
		return ft.Out(1) == errorType
	}
	return false
}

// constructionError — ошибка или паника конструктора модуля.
type constructionError struct {
	cause   any
	message string
}

func (e *constructionError) Error() string { return e.message }

func (e *constructionError) Unwrap() error {
	err, _ := e.cause.(error)
	return err
}

// construct вызывает конструктор, перехватывая панику.
func construct(ctor reflect.Value, args []reflect.Value) (m reflect.Value, cerr *constructionError) {
	defer func() {
		if r := recover(); r != nil {
			cerr = &constructionError{cause: r, message: fmt.Sprint(r)}
		}
	}()

	out := ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		err := out[1].Interface().(error)
		return reflect.Value{}, &constructionError{cause: err, message: err.Error()}
	}
	return out[0], nil
}

func isNilModule(m reflect.Value) bool {
	switch m.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return m.IsNil()
	}
	return false
}
