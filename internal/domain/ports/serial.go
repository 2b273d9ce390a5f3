package ports

import (
	"time"

	"espmanager/internal/domain/models"
)

// SerialPort определяет интерфейс открытого последовательного порта.
// Все методы возвращают ошибку при работе с уже закрытым портом.
type SerialPort interface {
	// Read читает доступные байты. По истечении таймаута чтения
	// возвращает (0, nil), как принято в go.bug.st/serial
	Read(p []byte) (int, error)

	// Write отправляет байты в порт
	Write(p []byte) (int, error)

	// SetReadTimeout задает таймаут одиночного чтения
	SetReadTimeout(d time.Duration) error

	// ResetInputBuffer сбрасывает накопленный входной буфер
	ResetInputBuffer() error

	// Close закрывает порт. Повторный вызов безопасен
	Close() error
}

// PortOpener определяет интерфейс открытия последовательных портов.
// Порт открывается в режиме 8N1 на заданной скорости.
type PortOpener interface {
	// Open открывает порт по системному имени
	Open(name string, baudRate int) (SerialPort, error)
}

// PortLister определяет интерфейс перечисления последовательных портов.
type PortLister interface {
	// List возвращает найденные порты, отсортированные по имени
	List() ([]models.PortInfo, error)
}
