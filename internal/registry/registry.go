// Package registry хранит модули конфигурации и типы точек входа,
// зарегистрированные пакетами плагинов из init().
//
// Модуль регистрируется конструктором: тип, который конструктор возвращает,
// задаёт имя модуля (QualifiedName) и его пространство имён (путь пакета).
// Форма конструктора здесь не проверяется: это делает загрузчик модулей,
// и нарушения формы становятся отклонёнными модулями, а не паникой.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Marker — метка, по которой загрузчик отбирает модули.
type Marker string

// InjectorConfig — метка модулей конфигурации DI графа.
const InjectorConfig Marker = "InjectorConfig"

// Descriptor описывает зарегистрированный модуль.
type Descriptor struct {
	// Name — полное имя типа модуля: <путь пакета>.<имя типа>.
	Name string
	// Namespace — путь пакета типа модуля.
	Namespace string
	// Marker — метка регистрации.
	Marker Marker
	// Constructors — все объявленные конструкторы модуля.
	// Допустим ровно один, остальное отклоняется при загрузке.
	Constructors []reflect.Value
}

// Params возвращает типы параметров единственного конструктора в порядке
// объявления. Для дескриптора без единственного конструктора возвращает nil.
func (d Descriptor) Params() []reflect.Type {
	if len(d.Constructors) != 1 {
		return nil
	}
	ft := d.Constructors[0].Type()
	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}
	return params
}

// In сообщает, принадлежит ли модуль пространству имён ns:
// пакет ns или любой пакет ниже ns/.
func (d Descriptor) In(ns string) bool {
	return InNamespace(d.Namespace, ns)
}

// InNamespace сообщает, лежит ли пакет pkg в пространстве имён ns.
func InNamespace(pkg, ns string) bool {
	ns = strings.TrimSuffix(ns, "/")
	return pkg == ns || strings.HasPrefix(pkg, ns+"/")
}

// TypeEntry — тип, который можно указать в --run.
type TypeEntry struct {
	// Name — полное имя типа.
	Name string
	// Type — тип, который возвращает конструктор (как объявлен, например *Main).
	Type reflect.Type
	// Constructor — конструктор, зависимости которого разрешает DI граф.
	Constructor reflect.Value
}

// Registry — набор модулей и типов точек входа.
type Registry struct {
	mu      sync.RWMutex
	modules map[Marker]map[string]Descriptor
	types   map[string]TypeEntry
}

// New создаёт пустой Registry.
func New() *Registry {
	return &Registry{
		modules: make(map[Marker]map[string]Descriptor),
		types:   make(map[string]TypeEntry),
	}
}

var defaultRegistry = New()

// Default возвращает процессный Registry, в который пишут Register* функции пакета.
func Default() *Registry {
	return defaultRegistry
}

// Register регистрирует модуль с меткой marker в процессном Registry.
func Register(marker Marker, ctors ...any) {
	defaultRegistry.Register(marker, ctors...)
}

// RegisterModule регистрирует модуль конфигурации (метка InjectorConfig).
//
//	func init() {
//	    registry.RegisterModule(NewConfig)
//	}
func RegisterModule(ctors ...any) {
	defaultRegistry.Register(InjectorConfig, ctors...)
}

// RegisterType регистрирует тип точки входа в процессном Registry.
func RegisterType(ctor any) {
	defaultRegistry.RegisterType(ctor)
}

// LookupType ищет тип точки входа в процессном Registry.
func LookupType(name string) (TypeEntry, bool) {
	return defaultRegistry.LookupType(name)
}

// Register регистрирует модуль. Все конструкторы должны возвращать один тип.
//
// Паникует если (programming error):
//   - marker пустой
//   - не передано ни одного конструктора
//   - конструктор nil, не функция или ничего не возвращает
//   - конструкторы возвращают разные типы
//   - тип не именованный
//   - модуль с этим именем и меткой уже зарегистрирован
func (r *Registry) Register(marker Marker, ctors ...any) {
	if marker == "" {
		panic("registry: empty marker")
	}
	if len(ctors) == 0 {
		panic("registry: no constructors")
	}

	values := make([]reflect.Value, 0, len(ctors))
	var produced reflect.Type
	for _, ctor := range ctors {
		fv, out := checkConstructor(ctor)
		if produced != nil && out != produced {
			panic(fmt.Sprintf("registry: constructors produce different types: %s and %s", produced, out))
		}
		produced = out
		values = append(values, fv)
	}

	d := Descriptor{
		Name:         QualifiedName(produced),
		Namespace:    namedType(produced).PkgPath(),
		Marker:       marker,
		Constructors: values,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	byName := r.modules[marker]
	if byName == nil {
		byName = make(map[string]Descriptor)
		r.modules[marker] = byName
	}
	if _, exists := byName[d.Name]; exists {
		panic("registry: duplicate module registration for " + d.Name)
	}
	byName[d.Name] = d
}

// RegisterType регистрирует тип точки входа по его конструктору.
// Паникует при nil/не функции/безымянном типе и при повторной регистрации.
func (r *Registry) RegisterType(ctor any) {
	fv, out := checkConstructor(ctor)
	e := TypeEntry{Name: QualifiedName(out), Type: out, Constructor: fv}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[e.Name]; exists {
		panic("registry: duplicate type registration for " + e.Name)
	}
	r.types[e.Name] = e
}

// Descriptors возвращает модули с меткой marker, отсортированные по имени.
func (r *Registry) Descriptors(marker Marker) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := r.modules[marker]
	result := make([]Descriptor, 0, len(byName))
	for _, d := range byName {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// LookupType возвращает тип точки входа по полному имени.
func (r *Registry) LookupType(name string) (TypeEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.types[name]
	return e, ok
}

// Names возвращает отсортированные имена зарегистрированных типов точек входа.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QualifiedName возвращает <путь пакета>.<имя типа> для именованного типа,
// указатели разыменовываются. Для безымянных типов — t.String().
func QualifiedName(t reflect.Type) string {
	nt := namedType(t)
	if nt.Name() == "" || nt.PkgPath() == "" {
		return t.String()
	}
	return nt.PkgPath() + "." + nt.Name()
}

func namedType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// checkConstructor возвращает функцию и тип её первого результата.
func checkConstructor(ctor any) (reflect.Value, reflect.Type) {
	if ctor == nil {
		panic("registry: nil constructor")
	}
	fv := reflect.ValueOf(ctor)
	if fv.Kind() != reflect.Func {
		panic(fmt.Sprintf("registry: constructor must be a function, got %T", ctor))
	}
	if fv.IsNil() {
		panic("registry: nil constructor")
	}
	if fv.Type().NumOut() == 0 {
		panic(fmt.Sprintf("registry: constructor %s returns nothing", fv.Type()))
	}
	out := fv.Type().Out(0)
	if nt := namedType(out); nt.Name() == "" || nt.PkgPath() == "" {
		panic(fmt.Sprintf("registry: constructor %s must return a named type", fv.Type()))
	}
	return fv, out
}
