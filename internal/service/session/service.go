package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"espmanager/internal/domain/ports"
	"espmanager/pkg/cleantext"
)

const (
	// pollTimeout — шаг ожидания данных порта. Короткий, чтобы отмена
	// контекста замечалась быстро.
	pollTimeout = 200 * time.Millisecond
	// chunkSize — размер буфера одного чтения.
	chunkSize = 4096
)

// Service ведет консольную сессию с устройством: непрерывно читает порт
// и передает очищенный от мусора текст наружу до отмены контекста.
type Service struct {
	opener ports.PortOpener
	log    ports.Logger
}

// NewService создает новый экземпляр Service
func NewService(opener ports.PortOpener, log ports.Logger) *Service {
	return &Service{
		opener: opener,
		log:    log,
	}
}

// Run открывает порт и передает вывод устройства в sink. Возвращается
// без ошибки при отмене контекста. На любом выходе входной буфер порта
// сбрасывается, порт закрывается.
func (s *Service) Run(ctx context.Context, portName string, baudRate int, sink io.Writer) error {
	port, err := s.opener.Open(portName, baudRate)
	if err != nil {
		return fmt.Errorf("ошибка открытия порта %s: %w", portName, err)
	}
	defer func() {
		if err := port.ResetInputBuffer(); err != nil {
			s.log.Debug("сброс входного буфера %s: %v", portName, err)
		}
		port.Close()
	}()

	if err := port.SetReadTimeout(pollTimeout); err != nil {
		return fmt.Errorf("ошибка настройки порта %s: %w", portName, err)
	}

	s.log.Info("сессия с портом %s на скорости %d начата", portName, baudRate)
	buf := make([]byte, chunkSize)
	for {
		if ctx.Err() != nil {
			s.log.Info("сессия с портом %s завершена", portName)
			return nil
		}

		count, err := port.Read(buf)
		if err != nil {
			return fmt.Errorf("ошибка чтения порта %s: %w", portName, err)
		}
		if count == 0 {
			continue
		}
		if _, err := io.WriteString(sink, cleantext.Strip(buf[:count])); err != nil {
			return fmt.Errorf("ошибка вывода сессии: %w", err)
		}
	}
}
