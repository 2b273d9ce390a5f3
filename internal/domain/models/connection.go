package models

// SupportedBaudRates — все скорости, на которых выполняется подбор.
// Перебор всегда идет от большего значения к меньшему.
var SupportedBaudRates = []int{
	50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800,
	2400, 4800, 9600, 14400, 19200, 28800, 38400, 57600,
	74880, 115200, 128000, 230400, 256000, 460800, 512000,
	921600, 1000000, 1152000, 1500000, 2000000,
}

// SupportedBaudRate сообщает, входит ли скорость в список поддерживаемых.
func SupportedBaudRate(rate int) bool {
	for _, r := range SupportedBaudRates {
		if r == rate {
			return true
		}
	}
	return false
}

// MaxReliableBaudRate — порог, выше которого скорость считается
// очень высокой и попадает в предупреждения.
const MaxReliableBaudRate = 2000000

// ProbeOutcome описывает исход одиночной попытки связи на одной скорости.
// Нулевое значение намеренно не Confirmed.
type ProbeOutcome int

const (
	// ProbeRejected — обмен прошел, но сигнатуры в ответе нет.
	ProbeRejected ProbeOutcome = iota
	// ProbeConfirmed — устройство ответило сигнатурой загрузчика.
	ProbeConfirmed
	// ProbeDeviceError — порт не открылся либо обмен оборвался.
	ProbeDeviceError
)

// String возвращает короткое имя исхода для журнала.
func (o ProbeOutcome) String() string {
	switch o {
	case ProbeConfirmed:
		return "confirmed"
	case ProbeRejected:
		return "rejected"
	case ProbeDeviceError:
		return "device error"
	default:
		return "unknown"
	}
}

// ProbeResult — результат одиночной попытки связи.
type ProbeResult struct {
	Port     string
	BaudRate int
	Outcome  ProbeOutcome
	Response []byte // прочитанный ответ устройства, может быть пустым
	Err      error  // заполняется только при ProbeDeviceError
}

// Confirmed сообщает, подтверждена ли связь на этой скорости.
func (r ProbeResult) Confirmed() bool {
	return r.Outcome == ProbeConfirmed
}

// SweepState описывает состояние перебора скоростей после его завершения.
// Нулевое значение намеренно не Confirmed.
type SweepState int

const (
	// SweepExhausted — перебран весь список, подтверждения нет.
	SweepExhausted SweepState = iota
	// SweepConfirmed — найдена подтвержденная скорость.
	SweepConfirmed
)

// String возвращает короткое имя состояния для журнала.
func (s SweepState) String() string {
	switch s {
	case SweepConfirmed:
		return "confirmed"
	case SweepExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// SweepResult — итог перебора скоростей на одном порту.
type SweepResult struct {
	ID       string // идентификатор перебора для журнала
	Port     string
	State    SweepState
	BaudRate int           // подтвержденная скорость, 0 при SweepExhausted
	Attempts []ProbeResult // все попытки в порядке выполнения
}

// PortInfo описывает обнаруженный последовательный порт.
type PortInfo struct {
	Name        string // системное имя, например COM3 или /dev/ttyUSB0
	Description string // описание из системы, может быть пустым
	LikelyESP32 bool   // описание похоже на USB-мост ESP32
}
