package discovery

import (
	"reflect"

	"github.com/Kargones/plugrun/internal/pkg/apperrors"
)

// ResolveArgs возвращает набор аргументов формы shape (указатель на
// структуру) из кэша сессии.
func (s *Session) ResolveArgs(shape reflect.Type) (reflect.Value, error) {
	if shape == nil || shape.Kind() != reflect.Pointer || shape.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, apperrors.Newf(apperrors.ErrArgsInvalidShape,
			"argument bundle must be a pointer to a struct, got %v", shape)
	}

	v, err := s.cache.Get(shape)
	if err != nil {
		return reflect.Value{}, apperrors.NewAppError(apperrors.ErrArgsParse,
			"cannot parse arguments for "+shape.String(), err)
	}
	return v, nil
}

// Resolve — типизированный ResolveArgs: T — указатель на структуру набора.
//
//	args, err := discovery.Resolve[*RunnerArgs](session)
func Resolve[T any](s *Session) (T, error) {
	var zero T
	v, err := s.ResolveArgs(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}
