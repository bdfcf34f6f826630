package runner

import (
	"slices"
	"strings"

	"github.com/Kargones/plugrun/internal/constants"
	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/registry"
)

func init() {
	registry.RegisterModule(NewRunnerConfig)
}

// RunnerArgs — аргументы самого загрузчика.
type RunnerArgs struct {
	// Run — полное имя типа запускаемого Runnable: <путь пакета>.<имя типа>.
	Run string `arg:"run" usage:"fully qualified type name of the Runnable to start"`
	// LogLevel — уровень логирования после старта.
	LogLevel logging.LogLevel `arg:"logLevel" usage:"log level: OFF, ERROR, WARN, INFO, DEBUG, ALL" default:"INFO"`
}

// RunnerConfig — встроенный модуль: делает *RunnerArgs доступным в графе.
// Получает тот же экземпляр, который проверил загрузчик.
type RunnerConfig struct {
	args *RunnerArgs
}

// NewRunnerConfig создаёт RunnerConfig.
func NewRunnerConfig(args *RunnerArgs) *RunnerConfig {
	return &RunnerConfig{args: args}
}

// Configure реализует inject.Module.
func (c *RunnerConfig) Configure(b *inject.Binder) {
	b.Supply(c.args)
}

// AddRunnable добавляет --run name в начало аргументов.
func AddRunnable(args []string, name string) []string {
	return Prepend(args, "--"+constants.FlagRun, name)
}

// Prepend возвращает новый срез: add, затем args.
func Prepend(args []string, add ...string) []string {
	return slices.Concat(add, args)
}

// Append возвращает новый срез: args, затем add.
func Append(args []string, add ...string) []string {
	return slices.Concat(args, add)
}

// FormatArgs соединяет аргументы через пробел.
func FormatArgs(args []string) string {
	return strings.Join(args, " ")
}

// hasFlag сообщает, передан ли флаг name в форме --name, --name=v.
func hasFlag(args []string, name string) bool {
	flag := "--" + name
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == flag || strings.HasPrefix(a, flag+"=") {
			return true
		}
	}
	return false
}
