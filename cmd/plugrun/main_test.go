package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kargones/plugrun/internal/argsassert"
	"github.com/Kargones/plugrun/internal/config"
	"github.com/Kargones/plugrun/internal/constants"
	"github.com/Kargones/plugrun/internal/pkg/testutil"
)

// isolate отключает внешнюю конфигурацию и восстанавливает глобальный логгер.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv("PLUGRUN_RUN", "")
	t.Setenv("PLUGRUN_LOG_LEVEL", "error")
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		slog.SetLogLoggerLevel(slog.LevelInfo)
	})
}

func TestRun_Examples(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "greeting",
			args: []string{"--run", constants.ExamplesNamespace + "/greeting.Greeter", "--name", "John", "--logLevel", "ERROR"},
			want: "Hello, John!\n",
		},
		{
			name: "component1",
			args: []string{"--run", constants.ExamplesNamespace + "/split/component1.Main1", "--name", "John", "--num", "4", "--logLevel", "ERROR"},
			want: "You can directly access arguments like --name: John\nOr injected instances, like JOHN or 4444!\n",
		},
		{
			name: "component2 uses binding of component1",
			args: []string{"--run", constants.ExamplesNamespace + "/split/component2.Main2", "--foo", "some string", "--num", "6", "--logLevel", "ERROR"},
			want: "Value of --foo is 'some string'\nThe repeated number is 666666.\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			var code int
			out := testutil.CaptureStdout(t, func() { code = run(tt.args) })
			assert.Equal(t, constants.ExitOK, code)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRun_MissingArgumentOfExample(t *testing.T) {
	isolate(t)
	var usage bytes.Buffer
	prev := argsassert.SetOutput(&usage)
	t.Cleanup(func() { argsassert.SetOutput(prev) })

	code := run([]string{"--run", constants.ExamplesNamespace + "/split/component1.Main1", "--name", "Jo", "--num", "4", "--logLevel", "OFF"})

	assert.Equal(t, constants.ExitFailure, code)
	assert.Contains(t, usage.String(), "name must be at least 3 characters")
}
