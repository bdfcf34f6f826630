// Package runner — точка входа загрузчика: разбирает собственные аргументы,
// находит модули плагинов, собирает из них DI граф и запускает выбранный
// Runnable.
//
//	func main() {
//	    runner.New(runner.WithNamespaces("example.com/plugins")).Main(os.Args[1:])
//	}
package runner

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Kargones/plugrun/internal/argparse"
	"github.com/Kargones/plugrun/internal/argsassert"
	"github.com/Kargones/plugrun/internal/config"
	"github.com/Kargones/plugrun/internal/constants"
	"github.com/Kargones/plugrun/internal/di"
	"github.com/Kargones/plugrun/internal/discovery"
	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/pkg/alerting"
	"github.com/Kargones/plugrun/internal/pkg/apperrors"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/tracing"
	"github.com/Kargones/plugrun/internal/registry"
)

// shutdownTimeout ограничивает отправку span-ов и метрик при завершении.
const shutdownTimeout = 5 * time.Second

// alertTimeout ограничивает отправку алерта о сбое.
const alertTimeout = 30 * time.Second

// Runner — загрузчик плагинов.
type Runner struct {
	namespaces []string
	registry   *registry.Registry
	cfg        *config.Config
	logOutput  io.Writer
	stderr     io.Writer
	global     bool
	exit       func(int)
}

// Option настраивает Runner.
type Option func(*Runner)

// WithNamespaces добавляет пространства имён, в которых ищутся модули
// плагинов. Собственное пространство имён загрузчика ищется всегда.
func WithNamespaces(namespaces ...string) Option {
	return func(r *Runner) { r.namespaces = append(r.namespaces, namespaces...) }
}

// WithRegistry задаёт Registry (по умолчанию registry.Default()).
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runner) { r.registry = reg }
}

// WithConfig задаёт готовую конфигурацию вместо config.Load().
func WithConfig(cfg *config.Config) Option {
	return func(r *Runner) { r.cfg = cfg }
}

// WithLogOutput задаёт вывод логов вместо настроенного в конфигурации.
func WithLogOutput(w io.Writer) Option {
	return func(r *Runner) { r.logOutput = w }
}

// WithGlobalLogging устанавливает логгер загрузчика как slog.Default
// и направляет в него стандартный пакет log.
func WithGlobalLogging() Option {
	return func(r *Runner) { r.global = true }
}

// WithExit задаёт функцию завершения процесса для Main.
func WithExit(exit func(int)) Option {
	return func(r *Runner) { r.exit = exit }
}

// New создаёт Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		registry: registry.Default(),
		stderr:   os.Stderr,
		exit:     os.Exit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Main выполняет Run. Ненулевой код завершает процесс через exit,
// при успехе завершение остаётся за вызывающим.
func (r *Runner) Main(rawArgs []string) {
	if code := r.Run(context.Background(), rawArgs); code != constants.ExitOK {
		r.exit(code)
	}
}

// Run выполняет загрузку и запуск. Возвращает constants.ExitOK или
// constants.ExitFailure. Паника на любом шаге, включая Runnable,
// перехватывается и пишется в лог.
func (r *Runner) Run(ctx context.Context, rawArgs []string) (code int) {
	cfg, err := r.config()
	if err != nil {
		_, _ = fmt.Fprintf(r.stderr, "plugrun: cannot load configuration: %v\n", err) //nolint:errcheck // bootstrap stderr
		return constants.ExitFailure
	}

	infra, err := di.InitializeInfra(cfg, r.logOutput)
	if err != nil {
		_, _ = fmt.Fprintf(r.stderr, "plugrun: cannot initialize infrastructure: %v\n", err) //nolint:errcheck // bootstrap stderr
		return constants.ExitFailure
	}
	base := infra.Logger.With(constants.LogKeyTraceID, infra.TraceID)
	logger := base.With(constants.LogKeyComponent, "runner")

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := infra.TracerShutdown(shutdownCtx); err != nil {
			logger.Debug("tracing shutdown failed", "error", err.Error())
		}
	}()

	ctx = tracing.WithTraceID(ctx, infra.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, infra.TraceID)
	ctx, span := tracing.Start(ctx, tracing.SpanBootstrap)

	b := &bootstrap{
		runner: r,
		infra:  infra,
		base:   base,
		logger: logger,
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec, stack: debug.Stack()}
			code = b.exitCode(ctx, err)
		}
		tracing.End(span, err)
	}()

	err = b.run(ctx, rawArgs)
	return b.exitCode(ctx, err)
}

func (r *Runner) config() (*config.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}
	return config.Load()
}

// searchNamespaces возвращает собственное пространство имён и затем
// пространства вызывающего без повторов.
func (r *Runner) searchNamespaces() []string {
	result := []string{constants.RunnerNamespace}
	seen := map[string]bool{constants.RunnerNamespace: true}
	for _, ns := range r.namespaces {
		ns = strings.TrimSuffix(ns, "/")
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		result = append(result, ns)
	}
	return result
}

func (r *Runner) logSettings(infra *di.Infra) logging.LogSettings {
	if r.global {
		return logging.NewGlobalSettings(infra.LogLevel, infra.Logger.Slog())
	}
	return logging.NewLevelSettings(infra.LogLevel)
}

// panicError — паника, перехваченная при загрузке или выполнении.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// bootstrap — состояние одного вызова Run.
type bootstrap struct {
	runner *Runner
	infra  *di.Infra
	base   logging.Logger
	logger logging.Logger

	// runnable — значение --run, после разбора аргументов.
	runnable string
}

func (b *bootstrap) run(ctx context.Context, rawArgs []string) error {
	if def := b.infra.Config.DefaultRun; def != "" && !hasFlag(rawArgs, constants.FlagRun) {
		rawArgs = AddRunnable(rawArgs, def)
	}
	b.logger.Debug("raw arguments", "args", FormatArgs(rawArgs))

	session := discovery.NewSession(argparse.New(rawArgs),
		discovery.WithRegistry(b.runner.registry),
		discovery.WithLogger(b.base),
		discovery.WithMetrics(b.infra.MetricsCollector),
	)

	args, err := discovery.Resolve[*RunnerArgs](session)
	if err != nil {
		return err
	}
	if err := argsassert.NotEmpty(args, args.Run, "no 'Runnable' defined"); err != nil {
		return err
	}

	b.runnable = args.Run
	b.runner.logSettings(b.infra).SetLogLevel(args.LogLevel)
	b.logger.Info("starting runnable", "runnable", args.Run)
	b.logger.Info("max memory", "max_memory", maxMemory())

	modules := b.discover(ctx, session)

	entry, err := b.resolveEntryPoint(ctx, session, args.Run)
	if err != nil {
		return err
	}

	graph, err := inject.Build(modules.Modules())
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrGraphBuild, "cannot build injection graph", err)
	}
	runnable, err := graph.Obtain(entry.Constructor.Interface())
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrGraphObtain, "cannot create "+entry.Name, err)
	}

	return b.execute(ctx, args.Run, runnable)
}

func (b *bootstrap) discover(ctx context.Context, session *discovery.Session) *discovery.ModuleSet {
	_, span := tracing.Start(ctx, tracing.SpanDiscover)
	defer span.End()

	modules := session.Scan(b.runner.searchNamespaces()...)
	span.SetAttributes(
		attribute.Int("modules.loaded", modules.Len()),
		attribute.Int("modules.rejected", len(session.Rejections())),
	)
	return modules
}

func (b *bootstrap) resolveEntryPoint(ctx context.Context, session *discovery.Session, name string) (registry.TypeEntry, error) {
	_, span := tracing.Start(ctx, tracing.SpanResolveEntryPoint, attribute.String("runnable", name))
	entry, err := session.ResolveEntryPoint(name)
	tracing.End(span, err)
	return entry, err
}

func (b *bootstrap) execute(ctx context.Context, name string, runnable inject.Runnable) (err error) {
	ctx, span := tracing.Start(ctx, tracing.SpanRun, attribute.String("runnable", name))
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec, stack: debug.Stack()}
		}
		b.infra.MetricsCollector.RecordRun(name, time.Since(start), err == nil)
		_ = b.infra.MetricsCollector.Push(ctx) //nolint:errcheck // ошибки push логируются внутри
		tracing.End(span, err)
	}()
	return runnable.Run(ctx)
}

// exitCode превращает результат загрузки в код завершения.
// Ошибки проверки аргументов и точки входа уже показаны пользователю,
// остальные пишутся в лог с подробностями и уходят алертом.
func (b *bootstrap) exitCode(ctx context.Context, err error) int {
	switch {
	case err == nil:
		return constants.ExitOK
	case argsassert.IsValidationFailure(err):
		return constants.ExitFailure
	case apperrors.HasCode(err, apperrors.ErrEntryPointNotFound),
		apperrors.HasCode(err, apperrors.ErrEntryPointNotRunnable):
		return constants.ExitFailure
	}

	attrs := []any{
		"error", err.Error(),
		"kind", fmt.Sprintf("%T", err),
	}
	if code := apperrors.Code(err); code != "" {
		attrs = append(attrs, "code", code)
	}
	if pe, ok := err.(*panicError); ok {
		attrs = append(attrs, "stack", string(pe.stack))
	}
	b.logger.Error("uncaught failure in bootstrap, shutting down", attrs...)
	b.alert(ctx, err)
	return constants.ExitFailure
}

// alert отправляет критический алерт о необработанном сбое.
func (b *bootstrap) alert(ctx context.Context, err error) {
	code := apperrors.Code(err)
	if code == "" {
		code = apperrors.ErrBootstrapUncaught
		if _, ok := err.(*panicError); ok {
			code = apperrors.ErrBootstrapPanic
		}
	}

	alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	defer cancel()
	_ = b.infra.Alerter.Send(alertCtx, alerting.Alert{ //nolint:errcheck // Send не возвращает ошибок доставки
		ErrorCode: code,
		Message:   err.Error(),
		TraceID:   b.infra.TraceID,
		Timestamp: time.Now(),
		Runnable:  b.runnable,
		Severity:  alerting.SeverityCritical,
	})
}

// maxMemory возвращает мягкий лимит памяти процесса (GOMEMLIMIT).
func maxMemory() string {
	limit := debug.SetMemoryLimit(-1)
	if limit == math.MaxInt64 {
		return "unlimited"
	}
	return humanize.IBytes(uint64(limit))
}
