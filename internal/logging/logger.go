package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger представляет систему логирования: вывод в консоль и в файл
// с независимыми порогами уровней
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	file          *os.File
	consoleLevel  LogLevel
	fileLevel     LogLevel
	mu            sync.Mutex
}

// Глобальный экземпляр логгера
var (
	globalLogger *Logger
	globalMu     sync.Mutex
)

// NewLogger создаёт логгер компонента. Файл логов создаётся в каталоге
// logs с временной меткой в имени
func NewLogger(component string) (*Logger, error) {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории logs: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join("logs", fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	return &Logger{
		consoleLogger: log.New(os.Stdout, "", log.LstdFlags),
		fileLogger:    log.New(file, "", log.LstdFlags|log.Lmicroseconds),
		file:          file,
		consoleLevel:  INFO,
		fileLevel:     DEBUG,
	}, nil
}

// SetLevels задаёт пороги уровней для консоли и файла
func (l *Logger) SetLevels(console, file LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consoleLevel = console
	l.fileLevel = file
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) logMessage(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...))
	if level >= l.consoleLevel {
		l.consoleLogger.Println(msg)
	}
	if l.file != nil && level >= l.fileLevel {
		l.fileLogger.Println(msg)
	}
}

// InitDefaultLogger инициализирует глобальный логгер компонента
func InitDefaultLogger(component string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	logger, err := NewLogger(component)
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// CloseDefaultLogger закрывает глобальный логгер
func CloseDefaultLogger() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger != nil {
		_ = globalLogger.Close()
		globalLogger = nil
	}
}

func defaultLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalLogger
}

func logToDefault(level LogLevel, format string, args ...interface{}) {
	if l := defaultLogger(); l != nil {
		l.logMessage(level, format, args...)
		return
	}
	// Без инициализации пишем в стандартный лог, чтобы не терять сообщения
	log.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// Trace пишет сообщение уровня TRACE
func Trace(format string, args ...interface{}) {
	logToDefault(TRACE, format, args...)
}

// Debug пишет сообщение уровня DEBUG
func Debug(format string, args ...interface{}) {
	logToDefault(DEBUG, format, args...)
}

// Info пишет сообщение уровня INFO
func Info(format string, args ...interface{}) {
	logToDefault(INFO, format, args...)
}

// Warn пишет сообщение уровня WARN
func Warn(format string, args ...interface{}) {
	logToDefault(WARN, format, args...)
}

// Error пишет сообщение уровня ERROR
func Error(format string, args ...interface{}) {
	logToDefault(ERROR, format, args...)
}
