package api

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/annel0/cubeglobe/internal/logging"
	"github.com/annel0/cubeglobe/internal/middleware"
	"github.com/annel0/cubeglobe/internal/render"
	"github.com/annel0/cubeglobe/internal/storage"
	"github.com/annel0/cubeglobe/internal/world"
)

// RestServer представляет REST API сервер генератора карт
type RestServer struct {
	router   *gin.Engine
	storage  storage.MapStorage
	catalog  *render.Catalog
	defaults world.GenParams
	port     string
	promMw   *middleware.PrometheusMiddleware
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port     string             // порт для запуска сервера
	Storage  storage.MapStorage // хранилище карт
	Catalog  *render.Catalog    // каталог тайлов для рендеринга
	Defaults world.GenParams    // параметры генерации по умолчанию
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8080"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	promMw := middleware.NewPrometheusMiddleware("cubeglobe")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:   router,
		storage:  config.Storage,
		catalog:  config.Catalog,
		defaults: config.Defaults,
		port:     config.Port,
		promMw:   promMw,
	}

	// Настраиваем маршруты
	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")
	{
		api.POST("/maps", rs.handleGenerateMap)
		api.GET("/maps", rs.handleListMaps)
		api.GET("/maps/:id", rs.handleGetMap)
		api.GET("/maps/:id/image", rs.handleGetMapImage)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// GenerateRequest представляет запрос на генерацию карты.
// Указатели различают «поле не задано» и «задан ноль»: пропущенные поля
// берутся из параметров по умолчанию
type GenerateRequest struct {
	Length        *int     `json:"length"`
	Frequency     *float64 `json:"frequency"`
	LayerHeight   *int     `json:"layer_height"`
	MaxWaterLevel *int     `json:"max_water_level"`
	MinSoilCutoff *int     `json:"min_soil_cutoff"`
	Seed          *int64   `json:"seed"`
}

// GenerateResponse представляет ответ на генерацию карты
type GenerateResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Message string `json:"message,omitempty"`
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// buildParams применяет переопределения запроса к параметрам по умолчанию
func (rs *RestServer) buildParams(req GenerateRequest) world.GenParams {
	params := rs.defaults
	if req.Length != nil {
		params.Length = *req.Length
	}
	if req.Frequency != nil {
		params.Frequency = *req.Frequency
	}
	if req.LayerHeight != nil {
		params.LayerHeight = *req.LayerHeight
	}
	if req.MaxWaterLevel != nil {
		params.MaxWaterLevel = *req.MaxWaterLevel
	}
	if req.MinSoilCutoff != nil {
		params.MinSoilCutoff = *req.MinSoilCutoff
	}
	if req.Seed != nil {
		params.Seed = *req.Seed
	}
	return params
}

// handleGenerateMap генерирует карту, рендерит её и сохраняет в хранилище
func (rs *RestServer) handleGenerateMap(c *gin.Context) {
	var req GenerateRequest
	// Пустое тело означает параметры по умолчанию
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, GenerateResponse{
				Success: false,
				Message: "Неверный формат запроса",
			})
			return
		}
	}

	params := rs.buildParams(req)
	gen, err := world.NewGenerator(params)
	if err != nil {
		// ConfigError называет неверное поле — отдаём текст клиенту
		c.JSON(http.StatusBadRequest, GenerateResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	genStart := time.Now()
	grid := gen.Generate()
	rs.promMw.ObserveGeneration(time.Since(genStart))

	renderStart := time.Now()
	canvas, err := render.NewCompositor(rs.catalog).Render(grid)
	if err != nil {
		logging.Error("Ошибка рендеринга карты: %v", err)
		c.JSON(http.StatusInternalServerError, GenerateResponse{
			Success: false,
			Message: "Ошибка рендеринга карты",
		})
		return
	}
	rs.promMw.ObserveRender(time.Since(renderStart))

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		logging.Error("Ошибка кодирования PNG: %v", err)
		c.JSON(http.StatusInternalServerError, GenerateResponse{
			Success: false,
			Message: "Ошибка кодирования изображения",
		})
		return
	}

	record := storage.MapRecord{
		ID:        uuid.NewString(),
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}
	if err := rs.storage.SaveMap(record, grid, buf.Bytes()); err != nil {
		logging.Error("Ошибка сохранения карты %s: %v", record.ID, err)
		c.JSON(http.StatusInternalServerError, GenerateResponse{
			Success: false,
			Message: "Ошибка сохранения карты",
		})
		return
	}

	logging.Info("Карта %s сгенерирована: %dx%d блоков", record.ID, params.Length, params.Length)
	c.JSON(http.StatusCreated, GenerateResponse{
		Success: true,
		ID:      record.ID,
		Width:   canvas.Width(),
		Height:  canvas.Height(),
	})
}

// handleListMaps возвращает метаданные всех сохранённых карт
func (rs *RestServer) handleListMaps(c *gin.Context) {
	records, err := rs.storage.ListMaps()
	if err != nil {
		logging.Error("Ошибка получения списка карт: %v", err)
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка получения списка карт",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список карт",
		Data:    records,
	})
}

// handleGetMap возвращает метаданные одной карты
func (rs *RestServer) handleGetMap(c *gin.Context) {
	record, err := rs.storage.LoadRecord(c.Param("id"))
	if errors.Is(err, storage.ErrMapNotFound) {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Карта не найдена",
		})
		return
	}
	if err != nil {
		logging.Error("Ошибка загрузки карты: %v", err)
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка загрузки карты",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Карта",
		Data:    record,
	})
}

// handleGetMapImage отдаёт отрендеренное изображение карты
func (rs *RestServer) handleGetMapImage(c *gin.Context) {
	data, err := rs.storage.LoadImage(c.Param("id"))
	if errors.Is(err, storage.ErrMapNotFound) {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Карта не найдена",
		})
		return
	}
	if err != nil {
		logging.Error("Ошибка загрузки изображения: %v", err)
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка загрузки изображения",
		})
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

// handleHealth обрабатывает health check
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает REST сервер
func (rs *RestServer) Start() error {
	logging.Info("REST API сервер запускается на %s", rs.port)
	return rs.router.Run(rs.port)
}

// Router возвращает внутренний gin-роутер (используется в тестах)
func (rs *RestServer) Router() http.Handler {
	return rs.router
}
