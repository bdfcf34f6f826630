// Package discovery находит модули конфигурации в пространствах имён,
// разрешает их зависимости (наборы аргументов) и точку входа.
//
// Всё состояние одного запуска живёт в Session: кэш аргументов, множество
// загруженных модулей и отклонённые модули. Session не потокобезопасна.
package discovery

import (
	"reflect"

	"github.com/Kargones/plugrun/internal/constants"
	"github.com/Kargones/plugrun/internal/pkg/apperrors"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/metrics"
	"github.com/Kargones/plugrun/internal/registry"
)

// Parser разбирает набор аргументов формы shape (*T) из командной строки.
// Каждый вызов возвращает новый экземпляр.
type Parser interface {
	Parse(shape reflect.Type) (any, error)
}

// Rejection — модуль, отклонённый при загрузке.
type Rejection struct {
	Module string
	Err    *apperrors.AppError
}

// Session — состояние одного запуска загрузчика.
type Session struct {
	registry *registry.Registry
	marker   registry.Marker
	logger   logging.Logger
	metrics  metrics.Collector

	cache      *ArgumentCache
	modules    *ModuleSet
	attempted  map[string]bool
	rejections []Rejection
}

// Option настраивает Session.
type Option func(*Session)

// WithRegistry задаёт Registry (по умолчанию registry.Default()).
func WithRegistry(r *registry.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithMarker задаёт метку отбираемых модулей (по умолчанию InjectorConfig).
func WithMarker(m registry.Marker) Option {
	return func(s *Session) { s.marker = m }
}

// WithLogger задаёт логгер.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics задаёт сборщик метрик загрузки модулей.
func WithMetrics(c metrics.Collector) Option {
	return func(s *Session) { s.metrics = c }
}

// NewSession создаёт Session, разбирающую аргументы через parser.
func NewSession(parser Parser, opts ...Option) *Session {
	s := &Session{
		registry:  registry.Default(),
		marker:    registry.InjectorConfig,
		logger:    logging.NewNopLogger(),
		metrics:   metrics.NewNopCollector(),
		modules:   newModuleSet(),
		attempted: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(constants.LogKeyComponent, "discovery")
	s.cache = NewArgumentCache(parser, s.logger)
	return s
}

// Cache возвращает кэш аргументов сессии.
func (s *Session) Cache() *ArgumentCache {
	return s.cache
}

// Modules возвращает модули, загруженные в сессии.
func (s *Session) Modules() *ModuleSet {
	return s.modules
}

// Rejections возвращает отклонённые модули в порядке загрузки.
func (s *Session) Rejections() []Rejection {
	return append([]Rejection(nil), s.rejections...)
}
