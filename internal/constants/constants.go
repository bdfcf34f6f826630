// Package constants содержит константы, общие для всего проекта plugrun.
// Константы сгруппированы по функциональному назначению.
package constants

// Константы приложения
const (
	// AppName - имя приложения, используется в метриках и трейсинге
	AppName = "plugrun"
	// Version - версия приложения в resource attributes трейсинга
	Version = "dev"
	// ModulePath - корневой путь Go-модуля
	ModulePath = "github.com/Kargones/plugrun"
)

// Пространства имён, в которых выполняется поиск модулей.
// Пространство имён совпадает с путём Go-пакета и включает все вложенные пакеты.
const (
	// RunnerNamespace - собственное пространство имён загрузчика (встроенные модули)
	RunnerNamespace = ModulePath + "/internal/runner"
	// ExamplesNamespace - пространство имён примеров плагинов
	ExamplesNamespace = ModulePath + "/internal/examples"
)

// Коды завершения процесса
const (
	// ExitOK - штатное завершение выбранного Runnable
	ExitOK = 0
	// ExitFailure - любой фатальный путь: ошибка аргументов, валидации,
	// разрешения точки входа или необработанная ошибка выполнения
	ExitFailure = 1
)

// Имена флагов загрузчика
const (
	// FlagRun - флаг с полным именем типа запускаемого Runnable
	FlagRun = "run"
	// FlagLogLevel - флаг уровня логирования
	FlagLogLevel = "logLevel"
)

// Атрибуты логов
const (
	// LogKeyComponent - атрибут с именем компонента, записавшего сообщение
	LogKeyComponent = "component"
	// LogKeyTraceID - атрибут с идентификатором трассировки запуска
	LogKeyTraceID = "trace_id"
)
