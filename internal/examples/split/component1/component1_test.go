package component1

import (
	"bytes"
	"context"
	"testing"

	"github.com/Kargones/plugrun/internal/argsassert"
	"github.com/Kargones/plugrun/internal/inject"
	"github.com/Kargones/plugrun/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMain1_Run(t *testing.T) {
	g, err := inject.Build([]inject.Module{NewConfig1(&Args1{Name: ptr("John"), Num: ptr(4)})})
	require.NoError(t, err)

	entry, err := g.Obtain(NewMain1)
	require.NoError(t, err)

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, entry.Run(context.Background()))
	})
	assert.Equal(t, "You can directly access arguments like --name: John\nOr injected instances, like JOHN or 4444!\n", out)
}

func TestConfig1_Validation(t *testing.T) {
	tests := []struct {
		name string
		args *Args1
		hint string
	}{
		{"missing name", &Args1{Num: ptr(1)}, "must provide a name"},
		{"short name", &Args1{Name: ptr("Jo"), Num: ptr(1)}, "name must be at least 3 characters"},
		{"missing number", &Args1{Name: ptr("John")}, "must provide a number"},
		{"zero number", &Args1{Name: ptr("John"), Num: ptr(0)}, "number must be set to a value greater 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prev := argsassert.SetOutput(&buf)
			t.Cleanup(func() { argsassert.SetOutput(prev) })

			g, err := inject.Build([]inject.Module{NewConfig1(tt.args)})
			require.NoError(t, err)

			_, err = g.Obtain(NewMain1)
			require.Error(t, err)
			assert.True(t, argsassert.IsValidationFailure(err))
			assert.Contains(t, buf.String(), tt.hint)
			assert.Contains(t, buf.String(), "--num")
		})
	}
}

func TestNumberRepeater_Get(t *testing.T) {
	assert.Equal(t, "333", NumberRepeater{num: 3}.Get())
	assert.Equal(t, "1010", NumberRepeater{num: 10}.Get()[:4])
}
