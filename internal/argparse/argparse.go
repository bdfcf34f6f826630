// Package argparse разбирает командную строку в наборы аргументов.
//
// Набор аргументов — структура, поля которой помечены тегами:
//
//	type Args struct {
//	    Name *string `arg:"name" usage:"имя для приветствия"`
//	    Num  int     `arg:"num" default:"1"`
//	}
//
// Каждый набор разбирается из всей командной строки независимо: флаги
// других наборов пропускаются. Поле-указатель остаётся nil, если флаг не
// передан. Поддерживаются string, bool, целые, беззнаковые, float,
// time.Duration, []string, []int, указатели на скаляры и любые типы,
// реализующие pflag.Value.
package argparse

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/spf13/pflag"
)

// Имена тегов полей набора.
const (
	TagArg     = "arg"
	TagUsage   = "usage"
	TagDefault = "default"
)

// ErrNotInstantiable — тип набора не является структурой или указателем на неё.
var ErrNotInstantiable = errors.New("argparse: bundle type is not instantiable")

// Parser разбирает наборы аргументов из одной командной строки.
type Parser struct {
	raw []string
}

// New создаёт Parser для командной строки raw (без имени программы).
func New(raw []string) *Parser {
	return &Parser{raw: append([]string(nil), raw...)}
}

// Args возвращает копию командной строки.
func (p *Parser) Args() []string {
	return append([]string(nil), p.raw...)
}

// Parse создаёт новый экземпляр набора shape (*T) и заполняет его из
// командной строки. Для shape T возвращается тоже *T.
func (p *Parser) Parse(shape reflect.Type) (any, error) {
	st, err := structType(shape)
	if err != nil {
		return nil, err
	}

	bundle := reflect.New(st)
	fs, err := flagSet(bundle)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(p.raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", shape, err)
	}
	return bundle.Interface(), nil
}

// Usage возвращает описание флагов набора bundle со значениями по умолчанию.
// Значения берутся из нового экземпляра, а не из переданного.
func Usage(bundle any) (string, error) {
	if bundle == nil {
		return "", ErrNotInstantiable
	}
	st, err := structType(reflect.TypeOf(bundle))
	if err != nil {
		return "", err
	}
	fs, err := flagSet(reflect.New(st))
	if err != nil {
		return "", err
	}
	return fs.FlagUsages(), nil
}

func structType(shape reflect.Type) (reflect.Type, error) {
	t := shape
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotInstantiable, shape)
	}
	return t, nil
}

// flagSet применяет default теги к bundle (*T) и объявляет флаги его полей.
func flagSet(bundle reflect.Value) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet(bundle.Type().Elem().String(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SortFlags = false

	if err := declare(fs, bundle.Elem()); err != nil {
		return nil, err
	}

	// --help принадлежит не набору, а всей командной строке.
	if fs.Lookup("help") == nil {
		fs.Bool("help", false, "")
		_ = fs.MarkHidden("help") //nolint:errcheck // флаг только что объявлен
	}
	return fs, nil
}

func declare(fs *pflag.FlagSet, v reflect.Value) error {
	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		name, tagged := sf.Tag.Lookup(TagArg)

		if !tagged && sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if !sf.IsExported() {
				// поля неэкспортируемой встроенной структуры недоступны через reflect
				return fmt.Errorf("argparse: %s: embedded %s must be exported", t, sf.Type)
			}
			if err := declare(fs, v.Field(i)); err != nil {
				return err
			}
			continue
		}
		if !tagged || name == "-" {
			continue
		}
		if name == "" {
			return fmt.Errorf("argparse: %s.%s: empty flag name", t, sf.Name)
		}
		if !sf.IsExported() {
			return fmt.Errorf("argparse: %s.%s: flag field must be exported", t, sf.Name)
		}
		if fs.Lookup(name) != nil {
			return fmt.Errorf("argparse: %s.%s: duplicate flag --%s", t, sf.Name, name)
		}

		field := v.Field(i)
		if def, ok := sf.Tag.Lookup(TagDefault); ok {
			if err := setDefault(field, def); err != nil {
				return fmt.Errorf("argparse: %s.%s: default %q: %w", t, sf.Name, def, err)
			}
		}
		if err := define(fs, field, name, sf.Tag.Get(TagUsage)); err != nil {
			return fmt.Errorf("argparse: %s.%s: %w", t, sf.Name, err)
		}
	}
	return nil
}

var pflagValueType = reflect.TypeOf((*pflag.Value)(nil)).Elem()

// define объявляет флаг, привязанный к полю. Текущее значение поля
// становится значением по умолчанию в Usage.
func define(fs *pflag.FlagSet, field reflect.Value, name, usage string) error {
	if field.Addr().Type().Implements(pflagValueType) {
		fs.Var(field.Addr().Interface().(pflag.Value), name, usage)
		return nil
	}

	switch p := field.Addr().Interface().(type) {
	case *string:
		fs.StringVar(p, name, *p, usage)
	case *bool:
		fs.BoolVar(p, name, *p, usage)
	case *int:
		fs.IntVar(p, name, *p, usage)
	case *int8:
		fs.Int8Var(p, name, *p, usage)
	case *int16:
		fs.Int16Var(p, name, *p, usage)
	case *int32:
		fs.Int32Var(p, name, *p, usage)
	case *int64:
		fs.Int64Var(p, name, *p, usage)
	case *uint:
		fs.UintVar(p, name, *p, usage)
	case *uint8:
		fs.Uint8Var(p, name, *p, usage)
	case *uint16:
		fs.Uint16Var(p, name, *p, usage)
	case *uint32:
		fs.Uint32Var(p, name, *p, usage)
	case *uint64:
		fs.Uint64Var(p, name, *p, usage)
	case *float32:
		fs.Float32Var(p, name, *p, usage)
	case *float64:
		fs.Float64Var(p, name, *p, usage)
	case *time.Duration:
		fs.DurationVar(p, name, *p, usage)
	case *[]string:
		fs.StringSliceVar(p, name, *p, usage)
	case *[]int:
		fs.IntSliceVar(p, name, *p, usage)
	default:
		if field.Kind() == reflect.Pointer && isScalar(field.Type().Elem()) {
			f := fs.VarPF(&optional{field: field}, name, "", usage)
			if field.Type().Elem().Kind() == reflect.Bool {
				f.NoOptDefVal = "true"
			}
			return nil
		}
		return fmt.Errorf("unsupported flag type %s", field.Type())
	}
	return nil
}

// setDefault записывает значение тега default в поле через тот же разбор,
// что и флаг командной строки.
func setDefault(field reflect.Value, def string) error {
	fs := pflag.NewFlagSet("default", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := define(fs, field, "v", ""); err != nil {
		return err
	}
	return fs.Set("v", def)
}
