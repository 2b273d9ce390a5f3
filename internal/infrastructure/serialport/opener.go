package serialport

import (
	"fmt"

	"go.bug.st/serial"

	"espmanager/internal/domain/ports"
)

// Opener реализует интерфейс ports.PortOpener через go.bug.st/serial.
// Порт всегда открывается в режиме 8N1.
type Opener struct{}

// NewOpener создает новый экземпляр Opener.
func NewOpener() ports.PortOpener {
	return &Opener{}
}

// Open открывает порт по системному имени на заданной скорости.
func (o *Opener) Open(name string, baudRate int) (ports.SerialPort, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия порта %s: %w", name, err)
	}
	return port, nil
}
