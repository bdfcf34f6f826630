// Package component2 — вторая половина разделённого примера. Main2
// зависит от NumberRepeater, который привязывает модуль component1.
//
//	plugrun --run github.com/Kargones/plugrun/internal/examples/split/component2.Main2 --foo "some string" --num 6
package component2

import (
	"context"
	"fmt"
	"os"

	"github.com/Kargones/plugrun/internal/argsassert"
	"github.com/Kargones/plugrun/internal/examples/split/component1"
	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/registry"
)

func init() {
	registry.RegisterModule(NewConfig2)
	registry.RegisterType(NewMain2)
}

// Args2 — аргументы компонента.
type Args2 struct {
	Foo *string `arg:"foo" usage:"some string for component2"`
}

// Config2 — модуль конфигурации компонента.
type Config2 struct {
	args *Args2
}

// NewConfig2 получает разобранный набор Args2 из загрузчика.
func NewConfig2(args *Args2) *Config2 {
	return &Config2{args: args}
}

// Configure реализует inject.Module.
func (c *Config2) Configure(b *inject.Binder) {
	b.Provide(c.provideArgs2)
}

func (c *Config2) provideArgs2() (*Args2, error) {
	if err := argsassert.NotNil(c.args, c.args.Foo, "foo must not be null"); err != nil {
		return nil, err
	}
	return c.args, nil
}

// Main2 — точка входа компонента.
type Main2 struct {
	args *Args2
	num  component1.NumberRepeater
}

// NewMain2 создаёт Main2.
func NewMain2(args *Args2, num component1.NumberRepeater) *Main2 {
	return &Main2{args: args, num: num}
}

// Run реализует inject.Runnable.
func (m *Main2) Run(context.Context) error {
	_, err := fmt.Fprintf(os.Stdout, "Value of --foo is '%s'\nThe repeated number is %s.\n", *m.args.Foo, m.num.Get())
	return err
}
