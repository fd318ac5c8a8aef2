package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

// Strategy selects how weather readings are produced. It is resolved once at startup.
type Strategy string

const (
	StrategyMock       Strategy = "mock"
	StrategyWeatherAPI Strategy = "weatherapi"
	StrategyGenerative Strategy = "generative"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyMock, StrategyWeatherAPI, StrategyGenerative:
		return st, nil
	default:
		return "", fmt.Errorf("unknown weather strategy %q (want mock, weatherapi or generative)", s)
	}
}

// Favorites storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Weather   WeatherConfig   `yaml:"weather"`
	Favorites FavoritesConfig `yaml:"favorites"`
	Sentry    SentryConfig    `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

type WeatherConfig struct {
	Strategy        Strategy         `yaml:"strategy" envconfig:"WEATHER_STRATEGY"`
	ForecastDays    int              `yaml:"forecast_days" envconfig:"FORECAST_DAYS"`
	RefreshInterval time.Duration    `yaml:"refresh_interval" envconfig:"REFRESH_INTERVAL"`
	RefreshRate     float64          `yaml:"refresh_rate" envconfig:"REFRESH_RATE"`
	MockLatency     time.Duration    `yaml:"mock_latency" envconfig:"MOCK_LATENCY"`
	WeatherAPI      WeatherAPIConfig `yaml:"weatherapi"`
	Generative      GenerativeConfig `yaml:"generative"`
}

type WeatherAPIConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"WEATHERAPI_BASE_URL"`
	APIKey  string `yaml:"api_key,omitempty" envconfig:"WEATHERAPI_KEY"`
	Timeout int    `yaml:"timeout" envconfig:"WEATHERAPI_TIMEOUT"`
}

type GenerativeConfig struct {
	APIKey      string  `yaml:"api_key,omitempty" envconfig:"GEMINI_API_KEY"`
	Model       string  `yaml:"model" envconfig:"GEMINI_MODEL"`
	Temperature float32 `yaml:"temperature" envconfig:"GEMINI_TEMPERATURE"`
	UseTool     bool    `yaml:"use_tool" envconfig:"GEMINI_USE_TOOL"`
	Timeout     int     `yaml:"timeout" envconfig:"GEMINI_TIMEOUT"`
}

type FavoritesConfig struct {
	Backend string `yaml:"backend" envconfig:"FAVORITES_BACKEND"`
	Path    string `yaml:"path" envconfig:"FAVORITES_PATH"`
	DSN     string `yaml:"dsn,omitempty" envconfig:"FAVORITES_DSN"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn,omitempty" envconfig:"SENTRY_DSN"`
	Debug bool   `yaml:"debug" envconfig:"SENTRY_DEBUG"`
}

// ConfigProvider loads and validates configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads a YAML file and then applies environment overrides.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var problems []string

	if cnf.App.Name == "" {
		problems = append(problems, "app.name is required")
	}
	if cnf.Server.Port == "" {
		problems = append(problems, "server.port is required")
	}

	strategy, err := ParseStrategy(string(cnf.Weather.Strategy))
	if err != nil {
		problems = append(problems, "weather.strategy: "+err.Error())
	} else {
		cnf.Weather.Strategy = strategy
	}

	if cnf.Weather.ForecastDays < 1 || cnf.Weather.ForecastDays > 14 {
		problems = append(problems, "weather.forecast_days must be between 1 and 14")
	}
	if cnf.Weather.RefreshInterval < 0 {
		problems = append(problems, "weather.refresh_interval cannot be negative")
	}
	if cnf.Weather.MockLatency < 0 {
		problems = append(problems, "weather.mock_latency cannot be negative")
	}

	switch cnf.Favorites.Backend {
	case BackendFile, BackendSQLite:
		if cnf.Favorites.Path == "" {
			problems = append(problems, "favorites.path is required for the "+cnf.Favorites.Backend+" backend")
		}
	case BackendPostgres:
		if cnf.Favorites.DSN == "" {
			problems = append(problems, "favorites.dsn is required for the postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("favorites.backend %q is not supported", cnf.Favorites.Backend))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	return nil
}

// NewConfigWithProvider loads configuration through provider and validates it.
func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cnf, nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-app",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level: "info",
		},
		Weather: WeatherConfig{
			Strategy:        StrategyMock,
			ForecastDays:    7,
			RefreshInterval: 10 * time.Minute,
			RefreshRate:     1,
			MockLatency:     500 * time.Millisecond,
			WeatherAPI: WeatherAPIConfig{
				BaseURL: "https://api.weatherapi.com/v1",
				Timeout: 10,
			},
			Generative: GenerativeConfig{
				Model:       "gemini-2.0-flash",
				Temperature: 0.8,
				Timeout:     60,
			},
		},
		Favorites: FavoritesConfig{
			Backend: BackendFile,
			Path:    "data/favorites.json",
		},
	}
}
