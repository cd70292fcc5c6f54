package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/cubeglobe/internal/api"
	"github.com/annel0/cubeglobe/internal/config"
	"github.com/annel0/cubeglobe/internal/logging"
	"github.com/annel0/cubeglobe/internal/render"
	"github.com/annel0/cubeglobe/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации (по умолчанию CUBEGLOBE_CONFIG)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🌍 Запуск сервера генерации изометрических карт...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	dataPath := cfg.Storage.GetDataPath()
	logging.Info("📡 Конфигурация сервера: REST API=%s, данные=%s", restPort, dataPath)

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===

	// Каталог тайлов: из YAML-описания или встроенный
	logging.Debug("Загрузка каталога тайлов...")
	var catalog *render.Catalog
	if cfg.Tiles.ConfigPath != "" {
		catalog, err = render.LoadCatalog(cfg.Tiles.ConfigPath)
		if err != nil {
			logging.Error("❌ Ошибка загрузки каталога тайлов: %v", err)
			log.Fatalf("❌ Ошибка загрузки каталога тайлов: %v", err)
		}
		logging.Info("🧩 Каталог тайлов загружен из %s", cfg.Tiles.ConfigPath)
	} else {
		catalog, err = render.DefaultCatalog()
		if err != nil {
			logging.Error("❌ Ошибка сборки встроенного каталога: %v", err)
			log.Fatalf("❌ Ошибка сборки встроенного каталога: %v", err)
		}
		logging.Info("🧩 Используется встроенный каталог тайлов")
	}

	// Хранилище карт
	logging.Debug("Открытие хранилища карт...")
	store, err := storage.NewBadgerStorage(dataPath)
	if err != nil {
		logging.Error("❌ Ошибка открытия хранилища: %v", err)
		log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
	}
	defer store.Close()

	// REST API сервер
	logging.Debug("Создание REST API сервера...")
	restServer := api.NewRestServer(api.Config{
		Port:     restPort,
		Storage:  store,
		Catalog:  catalog,
		Defaults: cfg.Generator,
	})

	go func() {
		if err := restServer.Start(); err != nil {
			logging.Error("❌ Ошибка REST API сервера: %v", err)
			os.Exit(1)
		}
	}()

	logging.Info("✅ Сервер запущен и готов принимать запросы")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("   📊 Метрики: http://localhost%s/metrics", restPort)
	logging.Info("💡 Примеры использования REST API:")
	logging.Info("   curl -X POST http://localhost%s/api/maps -H 'Content-Type: application/json' -d '{\"length\":64,\"seed\":42}'", restPort)
	logging.Info("   curl http://localhost%s/api/maps", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Ждем сигнала для завершения
	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	if err := store.Close(); err != nil {
		logging.Error("❌ Ошибка закрытия хранилища: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
}
