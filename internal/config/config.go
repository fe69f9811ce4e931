package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultProvider    = "openai"
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama-3.1-8b-instant"
	defaultTemperature = 0.7
	defaultHost        = "localhost"
	defaultPort        = 8501
	defaultSessionTTL  = time.Hour
	defaultLogLevel    = "info"
)

// env overrides, read once at process start
const (
	EnvLLMKey   = "HOSHIN_LLM_KEY"
	EnvGroqKey  = "GROQ_API_KEY"
	EnvHost     = "HOSHIN_HOST"
	EnvPort     = "HOSHIN_PORT"
	EnvLogLevel = "HOSHIN_LOG_LEVEL"
)

type Config struct {
	LogLevel string       `yaml:"log_level"`
	LLM      LLMConfig    `yaml:"llm"`
	Server   ServerConfig `yaml:"server"`
	Parser   ParserConfig `yaml:"parser"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	BaseURL     string        `yaml:"base_url"`
	Key         string        `yaml:"key"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// SessionTTL is how long an idle browser session is kept.
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type ParserConfig struct {
	KeepSingleRowTables bool `yaml:"keep_single_row_tables"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns a config with every default applied and no secret set.
func Default() *Config {
	cfg := &Config{LLM: LLMConfig{Temperature: defaultTemperature}}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads the YAML file at path, applies defaults for zero values and
// then the environment overrides. A missing file is an error. The temperature
// default only applies when the key is absent, so 0 stays configurable.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Config{LLM: LLMConfig{Temperature: defaultTemperature}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultProvider
	}
	if c.LLM.BaseURL == "" && c.LLM.Provider != "ollama" {
		c.LLM.BaseURL = defaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = defaultSessionTTL
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLLMKey); ok && v != "" {
		c.LLM.Key = v
	} else if v, ok := lookup(EnvGroqKey); ok && v != "" && c.LLM.Key == "" {
		c.LLM.Key = v
	}
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}
