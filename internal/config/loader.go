package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Kargones/plugrun/internal/pkg/apperrors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "plugrun-config.schema.json"

// Load загружает конфигурацию: YAML файл из PLUGRUN_CONFIG (если задан),
// затем переменные окружения PLUGRUN_* поверх него.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(EnvConfigFile))
}

// LoadFile загружает конфигурацию из файла path с env overrides.
// Пустой path означает только переменные окружения.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "cannot read environment", err)
		}
		return finish(&cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "cannot read config file "+path, err)
	}
	if err := ValidateDocument(data); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "config file "+path+" does not match schema", err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "cannot parse config file "+path, err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateDocument проверяет YAML документ по встроенной JSON схеме.
// YAML сначала переводится в JSON, чтобы числа сравнивались как json.Number.
func ValidateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	if doc == nil {
		// пустой файл
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decode embedded schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// validate проверяет секции metrics, tracing и alerting.
func validate(cfg *Config) error {
	var problems []string
	mc := cfg.Metrics.ToMetrics()
	if err := mc.Validate(); err != nil {
		problems = append(problems, "metrics: "+err.Error())
	}
	tc := cfg.Tracing.ToTracing()
	if err := tc.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	ac := cfg.Alerting.ToAlerting()
	if err := ac.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return apperrors.NewAppError(apperrors.ErrConfigValidate, strings.Join(problems, "; "), nil)
	}
	return nil
}
