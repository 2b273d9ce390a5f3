package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"espmanager/internal/domain/ports"
)

// logPrefix и logSuffix задают шаблон имени файла журнала.
const (
	logPrefix = "espmanager-"
	logSuffix = ".log"
)

// ZeroLogger реализует интерфейс ports.Logger поверх zerolog с выводом
// в консоль и в файл журнала.
type ZeroLogger struct {
	zl zerolog.Logger
}

// Options задают режим журналирования.
type Options struct {
	Dir      string // папка журналов, пустая строка отключает файл
	Debug    bool   // выводить ли отладочные сообщения
	PurgeOld bool   // удалять ли старые файлы журналов при старте
}

// New создает новый экземпляр ZeroLogger. Файл журнала получает имя с
// меткой времени запуска; при включенном PurgeOld прежние файлы журналов
// удаляются.
func New(opts Options) (ports.Logger, error) {
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("ошибка создания папки журналов: %w", err)
		}
		name := logPrefix + time.Now().Format("20060102-150405") + logSuffix
		if opts.PurgeOld {
			purgeOldLogs(opts.Dir, name)
		}
		f, err := os.OpenFile(filepath.Join(opts.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания файла журнала: %w", err)
		}
		writers = append(writers, f)
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return &ZeroLogger{zl: zl}, nil
}

// NewNop создает логгер, молча отбрасывающий все сообщения.
func NewNop() ports.Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

// Debug выводит отладочную информацию.
func (l *ZeroLogger) Debug(msg string, args ...interface{}) {
	l.zl.Debug().Msgf(msg, args...)
}

// Info выводит информационные сообщения.
func (l *ZeroLogger) Info(msg string, args ...interface{}) {
	l.zl.Info().Msgf(msg, args...)
}

// Warn выводит предупреждения.
func (l *ZeroLogger) Warn(msg string, args ...interface{}) {
	l.zl.Warn().Msgf(msg, args...)
}

// Error выводит ошибки.
func (l *ZeroLogger) Error(msg string, args ...interface{}) {
	l.zl.Error().Msgf(msg, args...)
}

// Fatal выводит критические ошибки и завершает программу.
func (l *ZeroLogger) Fatal(msg string, args ...interface{}) {
	l.zl.Fatal().Msgf(msg, args...)
}

// Printf форматированный вывод (для совместимости).
func (l *ZeroLogger) Printf(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// purgeOldLogs удаляет прежние файлы журналов, кроме текущего.
func purgeOldLogs(dir, keep string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == keep {
			continue
		}
		if strings.HasPrefix(name, logPrefix) && strings.HasSuffix(name, logSuffix) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}
