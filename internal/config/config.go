package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/annel0/cubeglobe/internal/world"
)

// Config корневая структура конфигурации приложения.

type Config struct {
	Generator world.GenParams `yaml:"generator"`
	Tiles     TilesConfig     `yaml:"tiles"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
}

type TilesConfig struct {
	// ConfigPath — путь к YAML-описанию набора тайлов. Пустое значение
	// означает встроенный набор
	ConfigPath string `yaml:"config_path"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

type StorageConfig struct {
	DataPath string `yaml:"data_path"`
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "CUBEGLOBE_REST_PORT", 8080)
}

// GetDataPath возвращает каталог данных с приоритетом: config -> env -> default
func (s *StorageConfig) GetDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	if envVal := os.Getenv("CUBEGLOBE_DATA"); envVal != "" {
		return envVal
	}
	return "data"
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Generator: world.DefaultGenParams(),
	}
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV CUBEGLOBE_CONFIG или возвращает
// конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CUBEGLOBE_CONFIG")
		if path == "" {
			return Default(), nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
