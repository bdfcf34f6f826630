// Package inject — контракт модулей и точек входа поверх go.uber.org/dig.
//
// Модуль получает Binder и объявляет в нём провайдеры; Build собирает из
// модулей граф, а Graph.Obtain создаёт точку входа со всеми зависимостями.
package inject

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/dig"
)

// Module — единица конфигурации DI графа.
type Module interface {
	Configure(b *Binder)
}

// Runnable — точка входа, выбираемая флагом --run.
type Runnable interface {
	Run(ctx context.Context) error
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Binder накапливает провайдеры одного модуля. Ошибки регистрации не
// прерывают Configure: они собираются и возвращаются из Build.
type Binder struct {
	c      *dig.Container
	bound  map[reflect.Type]struct{}
	module string
	errs   []error
}

// Provide регистрирует конструктор в графе.
func (b *Binder) Provide(ctor any, opts ...dig.ProvideOption) {
	if err := b.c.Provide(ctor, opts...); err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", b.module, err))
		return
	}
	// С опциями (dig.As, dig.Name, dig.Group) ключи графа другие.
	if len(opts) == 0 {
		for _, t := range resultTypes(ctor) {
			b.bound[t] = struct{}{}
		}
	}
}

// resultTypes возвращает типы, которые конструктор кладёт в граф напрямую.
// Поля dig.Out структур не разбираются.
func resultTypes(ctor any) []reflect.Type {
	ft := reflect.TypeOf(ctor)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil
	}
	var types []reflect.Type
	for i := 0; i < ft.NumOut(); i++ {
		t := ft.Out(i)
		if t == errorType || dig.IsOut(t) {
			continue
		}
		types = append(types, t)
	}
	return types
}

// Supply регистрирует готовые значения под их динамическими типами.
func (b *Binder) Supply(values ...any) {
	for _, v := range values {
		if v == nil {
			b.errs = append(b.errs, fmt.Errorf("%s: cannot supply untyped nil", b.module))
			continue
		}
		b.Provide(valueProvider(reflect.ValueOf(v), reflect.TypeOf(v)))
	}
}

// Bind регистрирует значение v под статическим типом T
// (например реализацию под интерфейсом).
func Bind[T any](b *Binder, v T) {
	b.Provide(func() T { return v })
}

// valueProvider строит func() t, возвращающую v.
func valueProvider(v reflect.Value, t reflect.Type) any {
	fn := reflect.MakeFunc(reflect.FuncOf(nil, []reflect.Type{t}, false), func([]reflect.Value) []reflect.Value {
		return []reflect.Value{v}
	})
	return fn.Interface()
}

// Graph — собранный DI граф.
type Graph struct {
	c     *dig.Container
	bound map[reflect.Type]struct{}
}

// Build конфигурирует модули по порядку и возвращает граф.
// Ошибки всех модулей объединяются через errors.Join.
// Паника в провайдере при разрешении графа превращается в dig.PanicError.
func Build(modules []Module) (*Graph, error) {
	c := dig.New(dig.RecoverFromPanics())
	bound := make(map[reflect.Type]struct{})

	var errs []error
	for _, m := range modules {
		b := &Binder{c: c, bound: bound, module: fmt.Sprintf("%T", m)}
		m.Configure(b)
		errs = append(errs, b.errs...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Graph{c: c, bound: bound}, nil
}

// Obtain регистрирует конструктор точки входа и создаёт её экземпляр,
// разрешая параметры конструктора из графа. Конструктор имеет форму
// func(deps...) T или func(deps...) (T, error), T реализует Runnable.
// Если модуль уже связал T, используется его провайдер, а ctor не регистрируется.
func (g *Graph) Obtain(ctor any) (Runnable, error) {
	fv := reflect.ValueOf(ctor)
	if fv.Kind() != reflect.Func || fv.Type().NumOut() == 0 {
		return nil, fmt.Errorf("entry point constructor must be a function returning a value, got %T", ctor)
	}
	ft := fv.Type()
	if ft.NumOut() > 2 || (ft.NumOut() == 2 && ft.Out(1) != errorType) {
		return nil, fmt.Errorf("entry point constructor %s must return (T) or (T, error)", ft)
	}
	out := ft.Out(0)

	if _, ok := g.bound[out]; !ok {
		if err := g.c.Provide(ctor); err != nil {
			return nil, err
		}
	}

	var instance reflect.Value
	capture := reflect.MakeFunc(reflect.FuncOf([]reflect.Type{out}, nil, false), func(args []reflect.Value) []reflect.Value {
		instance = args[0]
		return nil
	})
	if err := g.c.Invoke(capture.Interface()); err != nil {
		return nil, err
	}

	r, ok := instance.Interface().(Runnable)
	if !ok || r == nil {
		return nil, fmt.Errorf("entry point %s does not implement Runnable", out)
	}
	return r, nil
}
