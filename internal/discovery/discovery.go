package discovery

import (
	"errors"

	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/pkg/apperrors"
)

// ModuleSet — модули в порядке загрузки, уникальные по имени.
type ModuleSet struct {
	names   []string
	modules map[string]inject.Module
}

func newModuleSet() *ModuleSet {
	return &ModuleSet{modules: make(map[string]inject.Module)}
}

// Add добавляет модуль; повторное имя игнорируется.
func (ms *ModuleSet) Add(name string, m inject.Module) bool {
	if _, ok := ms.modules[name]; ok {
		return false
	}
	ms.names = append(ms.names, name)
	ms.modules[name] = m
	return true
}

// Contains сообщает, загружен ли модуль name.
func (ms *ModuleSet) Contains(name string) bool {
	_, ok := ms.modules[name]
	return ok
}

// Len возвращает количество модулей.
func (ms *ModuleSet) Len() int {
	return len(ms.names)
}

// Names возвращает имена модулей в порядке загрузки.
func (ms *ModuleSet) Names() []string {
	return append([]string(nil), ms.names...)
}

// Modules возвращает модули в порядке загрузки.
func (ms *ModuleSet) Modules() []inject.Module {
	result := make([]inject.Module, 0, len(ms.names))
	for _, name := range ms.names {
		result = append(result, ms.modules[name])
	}
	return result
}

// Scan ищет модули сессионной метки в пространствах имён namespaces
// (по порядку) и загружает их. Каждый дескриптор загружается не более
// одного раза за сессию, отказы накапливаются в Rejections.
// Возвращает множество всех модулей, загруженных сессией.
func (s *Session) Scan(namespaces ...string) *ModuleSet {
	descriptors := s.registry.Descriptors(s.marker)

	for _, ns := range namespaces {
		s.logger.Info("searching for modules",
			"marker", string(s.marker),
			"namespace", ns,
		)

		for _, d := range descriptors {
			if !d.In(ns) || s.attempted[d.Name] {
				continue
			}
			s.attempted[d.Name] = true

			m, err := s.LoadModule(d)
			if err != nil {
				s.rejections = append(s.rejections, Rejection{Module: d.Name, Err: asAppError(err)})
				continue
			}
			s.modules.Add(d.Name, m)
		}
	}
	return s.modules
}

func asAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.NewAppError(apperrors.ErrModuleInit, err.Error(), err)
}
