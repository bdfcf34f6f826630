package argparse

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	X string `arg:"x"`
}

type mode string

func (m *mode) String() string { return string(*m) }
func (m *mode) Set(s string) error {
	if s != "fast" && s != "slow" {
		return errors.New("mode must be fast or slow")
	}
	*m = mode(s)
	return nil
}
func (m *mode) Type() string { return "mode" }

type Common struct {
	Verbose bool `arg:"verbose" usage:"print more"`
}

type allKinds struct {
	Common
	Name     string         `arg:"name" usage:"who to greet"`
	Count    int            `arg:"count" default:"3"`
	Big      int64          `arg:"big"`
	Small    uint8          `arg:"small"`
	Ratio    float64        `arg:"ratio" default:"0.5"`
	Wait     time.Duration  `arg:"wait" default:"2s"`
	Tags     []string       `arg:"tags"`
	Ports    []int          `arg:"ports" default:"80,443"`
	Mode     mode           `arg:"mode" default:"slow"`
	Optional *string        `arg:"optional"`
	Limit    *int           `arg:"limit"`
	Flag     *bool          `arg:"flag"`
	Timeout  *time.Duration `arg:"timeout"`
	Ignored  string
	Skipped  string `arg:"-"`
}

func TestParse_AllKinds(t *testing.T) {
	p := New([]string{
		"--run", "some.Main", "--verbose", "--name", "bob", "--count=7", "--big", "9000000000",
		"--small", "8", "--ratio", "1.5", "--wait", "1m", "--tags", "a,b", "--tags", "c",
		"--mode", "fast", "--optional", "", "--limit", "0x10", "--flag", "--timeout", "3s",
		"positional",
	})

	v, err := p.Parse(reflect.TypeOf(&allKinds{}))
	require.NoError(t, err)
	a := v.(*allKinds)

	assert.True(t, a.Verbose)
	assert.Equal(t, "bob", a.Name)
	assert.Equal(t, 7, a.Count)
	assert.Equal(t, int64(9000000000), a.Big)
	assert.Equal(t, uint8(8), a.Small)
	assert.InDelta(t, 1.5, a.Ratio, 1e-9)
	assert.Equal(t, time.Minute, a.Wait)
	assert.Equal(t, []string{"a", "b", "c"}, a.Tags)
	assert.Equal(t, []int{80, 443}, a.Ports)
	assert.Equal(t, mode("fast"), a.Mode)
	require.NotNil(t, a.Optional)
	assert.Equal(t, "", *a.Optional)
	require.NotNil(t, a.Limit)
	assert.Equal(t, 16, *a.Limit)
	require.NotNil(t, a.Flag)
	assert.True(t, *a.Flag)
	require.NotNil(t, a.Timeout)
	assert.Equal(t, 3*time.Second, *a.Timeout)
}

func TestParse_DefaultsAndUnset(t *testing.T) {
	v, err := New(nil).Parse(reflect.TypeOf(&allKinds{}))
	require.NoError(t, err)
	a := v.(*allKinds)

	assert.Equal(t, 3, a.Count)
	assert.InDelta(t, 0.5, a.Ratio, 1e-9)
	assert.Equal(t, 2*time.Second, a.Wait)
	assert.Equal(t, []int{80, 443}, a.Ports)
	assert.Equal(t, mode("slow"), a.Mode)
	assert.Nil(t, a.Optional)
	assert.Nil(t, a.Limit)
	assert.Nil(t, a.Flag)
	assert.Empty(t, a.Name)
}

// TestParse_FreshInstances проверяет что каждый Parse создаёт новый экземпляр.
func TestParse_FreshInstances(t *testing.T) {
	p := New([]string{"--name", "x"})
	first, err := p.Parse(reflect.TypeOf(&allKinds{}))
	require.NoError(t, err)
	second, err := p.Parse(reflect.TypeOf(allKinds{}))
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
}

func TestParse_HelpIsNotAnError(t *testing.T) {
	_, err := New([]string{"--help"}).Parse(reflect.TypeOf(&Common{}))
	assert.NoError(t, err)
}

func TestParse_InvalidValue(t *testing.T) {
	tests := [][]string{
		{"--count", "many"},
		{"--mode", "medium"},
		{"--limit", "x"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := New(args).Parse(reflect.TypeOf(&allKinds{}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), args[0])
		})
	}
}

func TestParse_NotInstantiable(t *testing.T) {
	for _, shape := range []reflect.Type{reflect.TypeOf(0), reflect.TypeOf(new(int)), nil} {
		_, err := New(nil).Parse(shape)
		assert.ErrorIs(t, err, ErrNotInstantiable)
	}
}

func TestParse_BadDeclarations(t *testing.T) {
	type dup struct {
		A string `arg:"x"`
		B string `arg:"x"`
	}
	type unexported struct {
		a string `arg:"a"` //nolint:unused // проверка ошибки объявления
	}
	type unsupported struct {
		M map[string]string `arg:"m"`
	}
	type badDefault struct {
		N int `arg:"n" default:"ten"`
	}
	type empty struct {
		N int `arg:""`
	}
	type hidden struct {
		inner
	}

	for _, shape := range []any{&dup{}, &unexported{}, &unsupported{}, &badDefault{}, &empty{}, &hidden{}} {
		_, err := New(nil).Parse(reflect.TypeOf(shape))
		assert.Error(t, err, "%T", shape)
	}
}

func TestUsage(t *testing.T) {
	bundle := &allKinds{Count: 99}
	usage, err := Usage(bundle)
	require.NoError(t, err)

	assert.Contains(t, usage, "--name")
	assert.Contains(t, usage, "who to greet")
	assert.Contains(t, usage, "--count int")
	assert.Contains(t, usage, "(default 3)", "значение по умолчанию берётся из нового экземпляра")
	assert.Contains(t, usage, "--verbose")
	assert.NotContains(t, usage, "--help")
	assert.NotContains(t, usage, "Ignored")
}

func TestUsage_NoFlags(t *testing.T) {
	usage, err := Usage(struct{}{})
	require.NoError(t, err)
	assert.Empty(t, usage)
}

func TestUsage_NotInstantiable(t *testing.T) {
	_, err := Usage(42)
	assert.ErrorIs(t, err, ErrNotInstantiable)
	_, err = Usage(nil)
	assert.ErrorIs(t, err, ErrNotInstantiable)
}

func TestParser_ArgsCopy(t *testing.T) {
	raw := []string{"--a"}
	p := New(raw)
	raw[0] = "--b"
	assert.Equal(t, []string{"--a"}, p.Args())
}
