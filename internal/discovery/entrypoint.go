package discovery

import (
	"reflect"

	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/pkg/apperrors"
	"github.com/Kargones/plugrun/internal/registry"
)

var runnableType = reflect.TypeOf((*inject.Runnable)(nil)).Elem()

const runnableCapability = "inject.Runnable"

// ResolveEntryPoint находит тип точки входа по полному имени и проверяет,
// что он реализует inject.Runnable. Обе ошибки фатальны для запуска и
// пишутся в лог здесь.
func (s *Session) ResolveEntryPoint(name string) (registry.TypeEntry, error) {
	entry, ok := s.registry.LookupType(name)
	if !ok {
		s.logger.Error("entry point type cannot be found", "runnable", name)
		s.logger.Debug("known entry point types", "types", s.registry.Names())
		return registry.TypeEntry{}, apperrors.Newf(apperrors.ErrEntryPointNotFound,
			"entry point type %s cannot be found", name)
	}

	if !entry.Type.Implements(runnableType) {
		s.logger.Error("entry point type does not implement capability",
			"runnable", name,
			"capability", runnableCapability,
		)
		return registry.TypeEntry{}, apperrors.Newf(apperrors.ErrEntryPointNotRunnable,
			"%s does not implement %s", name, runnableCapability)
	}
	return entry, nil
}
