package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"go.uber.org/zap/zapcore"
)

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDataFileEmpty      = errors.New("data_file cannot be empty")
)

// FileName é o arquivo de configuração opcional no diretório de trabalho.
const FileName = ".busstation.json"

// Config reúne as opções do guichê.
type Config struct {
	DataFile    string `json:"data_file"`
	AuditLog    string `json:"audit_log"`
	ExportDir   string `json:"export_dir"`
	LogLevel    string `json:"log_level"`
	LogOutput   string `json:"log_output"`
	AutoExport  bool   `json:"auto_export"`
	HistoryFile string `json:"history_file"`

	// Source é o arquivo carregado, vazio quando só os padrões foram usados.
	Source string `json:"-"`
}

func Default() Config {
	return Config{
		DataFile:  "tickets_data.json",
		AuditLog:  "ticket_system.log",
		ExportDir: "ExportedTickets",
		LogLevel:  "warn",
		LogOutput: "stderr",
	}
}

// fileConfig distingue campos ausentes de campos vazios.
type fileConfig struct {
	DataFile    *string `json:"data_file"`
	AuditLog    *string `json:"audit_log"`
	ExportDir   *string `json:"export_dir"`
	LogLevel    *string `json:"log_level"`
	LogOutput   *string `json:"log_output"`
	AutoExport  *bool   `json:"auto_export"`
	HistoryFile *string `json:"history_file"`
}

// Overrides são valores vindos da linha de comando; nil não altera.
type Overrides struct {
	DataFile   *string
	AuditLog   *string
	ExportDir  *string
	LogLevel   *string
	AutoExport *bool
}

// Load aplica, em ordem: padrões, arquivo (.busstation.json em workDir ou o caminho
// explícito, que precisa existir) e overrides.
func Load(workDir, explicitPath string, overrides Overrides) (Config, error) {
	cfg := Default()

	path := explicitPath
	mustExist := path != ""
	if path == "" {
		path = FileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	fc, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, err
	}
	if loaded {
		cfg = merge(cfg, fc)
		cfg.Source = path
	}

	cfg = applyOverrides(cfg, overrides)

	if err := Validate(cfg); err != nil {
		if loaded {
			return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
		}
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}
			return fileConfig{}, false, nil
		}
		return fileConfig{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	fc, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return fc, true, nil
}

func parse(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(standardized, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return fc, nil
}

func merge(base Config, fc fileConfig) Config {
	if fc.DataFile != nil {
		base.DataFile = *fc.DataFile
	}
	if fc.AuditLog != nil {
		base.AuditLog = *fc.AuditLog
	}
	if fc.ExportDir != nil {
		base.ExportDir = *fc.ExportDir
	}
	if fc.LogLevel != nil {
		base.LogLevel = *fc.LogLevel
	}
	if fc.LogOutput != nil {
		base.LogOutput = *fc.LogOutput
	}
	if fc.AutoExport != nil {
		base.AutoExport = *fc.AutoExport
	}
	if fc.HistoryFile != nil {
		base.HistoryFile = *fc.HistoryFile
	}
	return base
}

func applyOverrides(cfg Config, o Overrides) Config {
	if o.DataFile != nil {
		cfg.DataFile = *o.DataFile
	}
	if o.AuditLog != nil {
		cfg.AuditLog = *o.AuditLog
	}
	if o.ExportDir != nil {
		cfg.ExportDir = *o.ExportDir
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.AutoExport != nil {
		cfg.AutoExport = *o.AutoExport
	}
	return cfg
}

func Validate(cfg Config) error {
	if cfg.DataFile == "" {
		return ErrDataFileEmpty
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
