package discovery

import (
	"context"
	"errors"
	"reflect"

	"github.com/Kargones/plugrun/internal/inject"
)

// countingParser создаёт пустые наборы и считает вызовы по типам.
type countingParser struct {
	calls map[reflect.Type]int
	fail  map[reflect.Type]error
}

func newCountingParser() *countingParser {
	return &countingParser{calls: map[reflect.Type]int{}, fail: map[reflect.Type]error{}}
}

func (p *countingParser) Parse(shape reflect.Type) (any, error) {
	p.calls[shape]++
	if err := p.fail[shape]; err != nil {
		return nil, err
	}
	return reflect.New(shape.Elem()).Interface(), nil
}

func (p *countingParser) total() int {
	n := 0
	for _, c := range p.calls {
		n += c
	}
	return n
}

type bundleA struct {
	Name string `yaml:"name"`
}

type bundleB struct {
	Num int
}

type describedBundle struct{}

func (*describedBundle) String() string { return "described bundle" }

// recordingModule запоминает, с какими наборами был создан.
type recordingModule struct {
	a *bundleA
	b *bundleB
}

func (*recordingModule) Configure(*inject.Binder) {}

func newZeroArgModule() *recordingModule { return &recordingModule{} }

type orderedModule struct{ recordingModule }

func newOrderedModule(a *bundleA, b *bundleB) *orderedModule {
	return &orderedModule{recordingModule{a: a, b: b}}
}

type twoCtorModule struct{ recordingModule }

func newTwoCtorA() *twoCtorModule         { return &twoCtorModule{} }
func newTwoCtorB(*bundleA) *twoCtorModule { return &twoCtorModule{} }

type plainType struct{}

func newPlainType() *plainType { return &plainType{} }

type failingModule struct{ recordingModule }

var errConstruction = errors.New("cannot construct")

func newFailingModule() (*failingModule, error) { return nil, errConstruction }

type panickingModule struct{ recordingModule }

func newPanickingModule() *panickingModule { panic("constructor exploded") }

type nilModule struct{ recordingModule }

func newNilModule() *nilModule { return nil }

type variadicModule struct{ recordingModule }

func newVariadicModule(...*bundleA) *variadicModule { return &variadicModule{} }

type badResultModule struct{ recordingModule }

func newBadResultModule() (*badResultModule, int) { return &badResultModule{}, 0 }

type valueParamModule struct{ recordingModule }

func newValueParamModule(bundleA) *valueParamModule { return &valueParamModule{} }

type testRunnable struct{}

func (*testRunnable) Run(context.Context) error { return nil }

func newTestRunnable() *testRunnable { return &testRunnable{} }

type notRunnable struct{}

func newNotRunnable() *notRunnable { return &notRunnable{} }
