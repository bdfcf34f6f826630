// Package component1 — первая половина разделённого примера. Её привязки
// (Name, NumberRepeater) используются и точкой входа из component2.
//
//	plugrun --run github.com/Kargones/plugrun/internal/examples/split/component1.Main1 --name John --num 4
package component1

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Kargones/plugrun/internal/argsassert"
	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/registry"
)

func init() {
	registry.RegisterModule(NewConfig1)
	registry.RegisterType(NewMain1)
}

// Args1 — аргументы компонента. Указатели позволяют отличить
// отсутствующий флаг от нулевого значения.
type Args1 struct {
	Name *string `arg:"name" usage:"some name for component1"`
	Num  *int    `arg:"num" usage:"some number for component1"`
}

// Name — проверенное имя.
type Name string

// UpperCase возвращает имя в верхнем регистре.
func (n Name) UpperCase() string {
	return strings.ToUpper(string(n))
}

// NumberRepeater повторяет число столько раз, каково его значение.
type NumberRepeater struct {
	num int
}

// Get возвращает повторённое число.
func (r NumberRepeater) Get() string {
	return strings.Repeat(strconv.Itoa(r.num), r.num)
}

// Config1 — модуль конфигурации компонента.
type Config1 struct {
	args *Args1
}

// NewConfig1 получает разобранный набор Args1 из загрузчика.
func NewConfig1(args *Args1) *Config1 {
	return &Config1{args: args}
}

// Configure реализует inject.Module.
func (c *Config1) Configure(b *inject.Binder) {
	b.Supply(c.args)
	b.Provide(c.provideName)
	b.Provide(c.provideNumberRepeater)
}

func (c *Config1) provideName() (Name, error) {
	err := argsassert.For(c.args).
		NotNil(c.args.Name, "must provide a name").
		That(c.args.Name != nil && len(*c.args.Name) >= 3, "name must be at least 3 characters").
		Err()
	if err != nil {
		return "", err
	}
	return Name(*c.args.Name), nil
}

func (c *Config1) provideNumberRepeater() (NumberRepeater, error) {
	err := argsassert.For(c.args).
		NotNil(c.args.Num, "must provide a number").
		That(c.args.Num != nil && *c.args.Num > 0, "number must be set to a value greater 0").
		Err()
	if err != nil {
		return NumberRepeater{}, err
	}
	return NumberRepeater{num: *c.args.Num}, nil
}

// Main1 — точка входа компонента.
type Main1 struct {
	args   *Args1
	name   Name
	number NumberRepeater
}

// NewMain1 создаёт Main1.
func NewMain1(args *Args1, name Name, number NumberRepeater) *Main1 {
	return &Main1{args: args, name: name, number: number}
}

// Run реализует inject.Runnable.
func (m *Main1) Run(context.Context) error {
	_, err := fmt.Fprintf(os.Stdout,
		"You can directly access arguments like --name: %s\nOr injected instances, like %s or %s!\n",
		*m.args.Name, m.name.UpperCase(), m.number.Get())
	return err
}
