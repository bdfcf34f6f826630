// Package greeting — пример плагина в одном пакете: набор аргументов,
// модуль конфигурации и точка входа.
//
//	plugrun --run github.com/Kargones/plugrun/internal/examples/greeting.Greeter --name John
package greeting

import (
	"context"
	"fmt"
	"os"

	"github.com/Kargones/plugrun/internal/argsassert"
	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/registry"
)

func init() {
	registry.RegisterModule(NewConfig)
	registry.RegisterType(NewGreeter)
}

// Args — аргументы примера. Обязательность не задаётся тегами:
// проверка выполняется в провайдере.
type Args struct {
	Name *string `arg:"name" usage:"Name to be greeted."`
}

// Config — модуль конфигурации примера.
type Config struct {
	args *Args
}

// NewConfig получает разобранный набор Args из загрузчика.
func NewConfig(args *Args) *Config {
	return &Config{args: args}
}

// Configure реализует inject.Module.
func (c *Config) Configure(b *inject.Binder) {
	b.Provide(c.provideArgs)
}

// provideArgs проверяет аргументы только когда они запрошены точкой входа.
func (c *Config) provideArgs() (*Args, error) {
	if err := argsassert.NotNil(c.args, c.args.Name, "Name must be set"); err != nil {
		return nil, err
	}
	return c.args, nil
}

// Greeter приветствует пользователя по имени.
type Greeter struct {
	args *Args
}

// NewGreeter создаёт Greeter.
func NewGreeter(args *Args) *Greeter {
	return &Greeter{args: args}
}

// Run реализует inject.Runnable.
func (g *Greeter) Run(context.Context) error {
	_, err := fmt.Fprintf(os.Stdout, "Hello, %s!\n", *g.args.Name)
	return err
}
