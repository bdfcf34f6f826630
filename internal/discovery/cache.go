package discovery

import (
	"fmt"
	"reflect"

	"github.com/Kargones/plugrun/internal/pkg/logging"

	"gopkg.in/yaml.v3"
)

type cacheEntry struct {
	value reflect.Value
	err   error
}

// ArgumentCache хранит разобранные наборы аргументов по их типу.
// Каждый тип разбирается не более одного раза: ошибка разбора тоже кэшируется.
type ArgumentCache struct {
	parser  Parser
	logger  logging.Logger
	entries map[reflect.Type]cacheEntry
}

// NewArgumentCache создаёт пустой кэш.
func NewArgumentCache(parser Parser, logger logging.Logger) *ArgumentCache {
	return &ArgumentCache{
		parser:  parser,
		logger:  logger,
		entries: make(map[reflect.Type]cacheEntry),
	}
}

// Get возвращает экземпляр набора shape, при первом обращении разбирая его.
// Описание разобранного набора пишется в лог один раз.
func (c *ArgumentCache) Get(shape reflect.Type) (reflect.Value, error) {
	if e, ok := c.entries[shape]; ok {
		return e.value, e.err
	}

	e := c.parse(shape)
	c.entries[shape] = e
	if e.err == nil {
		c.logger.Info("parsed arguments",
			"type", shape.String(),
			"description", Describe(e.value.Interface()),
		)
	}
	return e.value, e.err
}

// Len возвращает количество закэшированных типов.
func (c *ArgumentCache) Len() int {
	return len(c.entries)
}

func (c *ArgumentCache) parse(shape reflect.Type) cacheEntry {
	v, err := c.parser.Parse(shape)
	if err != nil {
		return cacheEntry{err: err}
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != shape {
		return cacheEntry{err: fmt.Errorf("parser returned %T for %s", v, shape)}
	}
	return cacheEntry{value: rv}
}

// Describe возвращает описание набора: String(), если набор реализует
// fmt.Stringer, иначе заголовок <тип>@<адрес> и поля в YAML.
func Describe(bundle any) string {
	if s, ok := bundle.(fmt.Stringer); ok {
		return s.String()
	}
	header := fmt.Sprintf("%T@%p", bundle, bundle)
	if dump, ok := dumpFields(bundle); ok {
		return header + "\n" + dump
	}
	return header
}

// dumpFields сериализует набор в YAML; типы, которые yaml.v3 не умеет
// сериализовать, дают панику, поэтому она перехватывается.
func dumpFields(bundle any) (dump string, ok bool) {
	defer func() {
		if recover() != nil {
			dump, ok = "", false
		}
	}()
	out, err := yaml.Marshal(bundle)
	if err != nil {
		return "", false
	}
	return string(out), true
}
