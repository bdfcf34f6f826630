// Package main содержит точку входа plugrun: загрузчика плагинов,
// который собирает DI граф из модулей примеров и запускает Runnable,
// выбранный флагом --run.
//
//	plugrun --run github.com/Kargones/plugrun/internal/examples/greeting.Greeter --name John
package main

import (
	"context"
	"os"

	"github.com/Kargones/plugrun/internal/constants"
	"github.com/Kargones/plugrun/internal/runner"

	// Примеры плагинов: blank import для self-registration через init()
	_ "github.com/Kargones/plugrun/internal/examples/greeting"
	_ "github.com/Kargones/plugrun/internal/examples/logdemo"
	_ "github.com/Kargones/plugrun/internal/examples/split/component1"
	_ "github.com/Kargones/plugrun/internal/examples/split/component2"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	r := runner.New(
		runner.WithNamespaces(constants.ExamplesNamespace),
		runner.WithGlobalLogging(),
	)
	return r.Run(context.Background(), args)
}
