package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del detector.
type Config struct {
	Detector DetectorConfig `yaml:"detector"`
	Input    InputConfig    `yaml:"input"`
	Storage  StorageConfig  `yaml:"storage"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
}

// DetectorConfig son las opciones reconocidas del detector de rupturas.
// Los ceros se sustituyen por los defaults documentados en el propio detector.
type DetectorConfig struct {
	MinATRMultiple float64 `yaml:"min_atr_multiple"` // default 1.0
	MinVolumeRatio float64 `yaml:"min_volume_ratio"` // default 1.2
	MaxTimeBars    int     `yaml:"max_time_bars"`    // default 10
	FXLookback     int     `yaml:"fx_lookback"`      // default 20, orientativo
	FXMinStrength  int     `yaml:"fx_min_strength"`  // default 3
	BILookback     int     `yaml:"bi_lookback"`      // default 10, orientativo
	BIMinPower     float64 `yaml:"bi_min_power"`     // default 0.0

	// Flags reservados: se aceptan pero el clasificador no los consulta aún.
	CHOCHMomentumRequired          bool `yaml:"choch_momentum_required"`
	CHOCHInternalStructureRequired bool `yaml:"choch_internal_structure_required"`
}

// InputConfig indica de dónde leer la serie descompuesta.
type InputConfig struct {
	Path string `yaml:"path"` // documento JSON de la etapa aguas arriba
}

// StorageConfig controla dónde se persisten las pasadas.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ReportConfig controla la salida de cada pasada.
type ReportConfig struct {
	Table   bool   `yaml:"table"`    // tabla completa en consola
	CSVPath string `yaml:"csv_path"` // exportar proyección CSV si no está vacío
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del .env sobreescriben los del YAML para las keys que
// correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STRUCTSCAN_INPUT"); v != "" {
		cfg.Input.Path = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Los parámetros del detector se normalizan en el propio detector.
func setDefaults(cfg *Config) {
	if cfg.Input.Path == "" {
		cfg.Input.Path = "series.json"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "structscan.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
