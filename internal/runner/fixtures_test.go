package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/Kargones/plugrun/internal/argsassert"
	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/registry"
)

type greetArgs struct {
	Name *string `arg:"name" usage:"name to greet"`
}

type greetName string

type greetConfig struct {
	args *greetArgs
}

func newGreetConfig(args *greetArgs) *greetConfig {
	return &greetConfig{args: args}
}

func (c *greetConfig) Configure(b *inject.Binder) {
	b.Provide(func() (greetName, error) {
		if err := argsassert.NotNil(c.args, c.args.Name, "name required"); err != nil {
			return "", err
		}
		return greetName(*c.args.Name), nil
	})
}

// greetMain печатает имя и собственный --run, полученный из графа.
type greetMain struct {
	name greetName
	args *RunnerArgs
}

func newGreetMain(name greetName, args *RunnerArgs) *greetMain {
	return &greetMain{name: name, args: args}
}

func (m *greetMain) Run(context.Context) error {
	_, err := fmt.Fprintf(os.Stdout, "hello %s from %s\n", m.name, m.args.Run)
	return err
}

type panicMain struct{}

func newPanicMain() *panicMain { return &panicMain{} }

func (*panicMain) Run(context.Context) error { panic("runnable exploded") }

var errRunnable = errors.New("runnable failed")

type failingMain struct{}

func newFailingMain() *failingMain { return &failingMain{} }

func (*failingMain) Run(context.Context) error { return errRunnable }

type notRunnable struct{}

func newNotRunnable() *notRunnable { return &notRunnable{} }

// brokenModule отклоняется при загрузке: два конструктора.
type brokenModule struct{}

func (*brokenModule) Configure(*inject.Binder) {}

func newBrokenModuleA() *brokenModule           { return &brokenModule{} }
func newBrokenModuleB(*greetArgs) *brokenModule { return &brokenModule{} }

func newTestRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register(registry.InjectorConfig, NewRunnerConfig)
	reg.Register(registry.InjectorConfig, newGreetConfig)
	reg.Register(registry.InjectorConfig, newBrokenModuleA, newBrokenModuleB)
	reg.RegisterType(newGreetMain)
	reg.RegisterType(newPanicMain)
	reg.RegisterType(newFailingMain)
	reg.RegisterType(newNotRunnable)
	return reg
}

func qualified(v any) string {
	return registry.QualifiedName(reflect.TypeOf(v))
}
