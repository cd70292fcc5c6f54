package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CUBEGLOBE_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Пустой путь должен давать конфигурацию по умолчанию: %v", err)
	}
	if cfg.Generator.Length <= 0 {
		t.Error("Параметры генерации по умолчанию должны быть валидны")
	}
	if err := cfg.Generator.Validate(); err != nil {
		t.Errorf("Параметры по умолчанию не проходят валидацию: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	yml := `
generator:
  length: 32
  seed: 99
server:
  rest_port: 9090
storage:
  data_path: /tmp/cubeglobe
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatalf("Ошибка записи конфигурации: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if cfg.Generator.Length != 32 || cfg.Generator.Seed != 99 {
		t.Errorf("Параметры генерации не прочитаны: %+v", cfg.Generator)
	}
	// Не заданные в файле поля остаются дефолтными
	if cfg.Generator.LayerHeight == 0 {
		t.Error("Пропущенные поля должны сохранять значения по умолчанию")
	}
	if cfg.Server.GetRESTPort() != 9090 {
		t.Errorf("Ожидался порт 9090, получен %d", cfg.Server.GetRESTPort())
	}
	if cfg.Storage.GetDataPath() != "/tmp/cubeglobe" {
		t.Errorf("Неверный каталог данных: %s", cfg.Storage.GetDataPath())
	}
}

func TestPortEnvFallback(t *testing.T) {
	t.Setenv("CUBEGLOBE_REST_PORT", "7070")

	s := ServerConfig{}
	if got := s.GetRESTPort(); got != 7070 {
		t.Errorf("Порт должен браться из окружения: %d", got)
	}

	// Конфиг имеет приоритет над окружением
	s.RESTPort = 6060
	if got := s.GetRESTPort(); got != 6060 {
		t.Errorf("Порт из конфига должен иметь приоритет: %d", got)
	}
}

func TestPortDefault(t *testing.T) {
	t.Setenv("CUBEGLOBE_REST_PORT", "")

	s := ServerConfig{}
	if got := s.GetRESTPort(); got != 8080 {
		t.Errorf("Ожидался порт по умолчанию 8080, получен %d", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yml"); err == nil {
		t.Error("Отсутствующий файл должен давать ошибку")
	}
}
