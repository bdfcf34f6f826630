// Package testutil содержит общие утилиты для тестирования: перехват stdout
// и запись JSON логов с последующим разбором.
package testutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout выполняет fn, перехватывая os.Stdout, и возвращает вывод.
// Вывод читается параллельно с fn, поэтому большой вывод не блокирует pipe.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err, "cannot create stdout pipe")

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r) //nolint:errcheck // test helper
		done <- buf.Bytes()
	}()

	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()

	_ = w.Close() //nolint:errcheck // test helper pipe close
	return string(<-done)
}
