// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack), удобный метод для логирования HTTP-запросов и отдельный
// конфигурируемый логгер для слоя хранения (storage/repository/service).
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger
}

// Options — параметры логгера слоя хранения.
//
// Поля:
//   - Level: debug|info|warn|error (по умолчанию info)
//   - Format: json|console (по умолчанию json)
//   - Dir: каталог логов (по умолчанию runtime/logs)
//   - File: имя файла (по умолчанию store.log)
//   - Development: включает stacktrace на warn и выше
type Options struct {
	Level       string
	Format      string
	Dir         string
	File        string
	Development bool
}

// NewHTTPLogger создаёт файловый zap-логгер для HTTP-логов.
//
// Логи записываются в файл runtime/logs/http.log.
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func NewHTTPLogger() *HTTPLogger {
	writer := rotatingWriter(filepath.Join("runtime", "logs"), "http.log")

	// выводим обычный текст
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		writer,
		zap.InfoLevel,
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &HTTPLogger{Logger: logger}
}

// New создаёт логгер для слоя хранения по Options.
//
// Пишет одновременно в файл с ротацией и в stderr, чтобы деградация чтения
// коллекции была видна и при локальном запуске.
func New(opts Options) *zap.Logger {
	dir := opts.Dir
	if dir == "" {
		dir = filepath.Join("runtime", "logs")
	}
	file := opts.File
	if file == "" {
		file = "store.log"
	}

	level := ParseLevel(opts.Level)

	var enc zapcore.Encoder
	if strings.EqualFold(opts.Format, "console") {
		enc = zapcore.NewConsoleEncoder(encoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	}

	core := zapcore.NewTee(
		zapcore.NewCore(enc, rotatingWriter(dir, file), level),
		zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level),
	)

	zopts := []zap.Option{zap.AddCaller()}
	if opts.Development {
		zopts = append(zopts, zap.Development(), zap.AddStacktrace(zap.WarnLevel))
	}
	return zap.New(core, zopts...)
}

// NewNop возвращает логгер, который ничего не пишет (для тестов).
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// ParseLevel переводит строку из конфига в уровень zap.
// Неизвестные значения трактуются как info.
func ParseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zap.InfoLevel
	}
	return lvl
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// method и uri — параметры запроса,
// status — HTTP-статус ответа,
// responseSize — размер ответа в байтах,
// duration — длительность обработки запроса в миллисекундах.
func (logger *HTTPLogger) LogRequest(method, uri string, status, responseSize int, duration float64) {
	logger.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// rotatingWriter создаёт каталог и возвращает writer с ротацией через lumberjack.
func rotatingWriter(dir, file string) zapcore.WriteSyncer {
	_ = os.MkdirAll(dir, 0755)

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, file),
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // дней
		Compress:   true,
	})
}

func encoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder
	return encoderCfg
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
