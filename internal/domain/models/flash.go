package models

// DefaultFlashBaudRate используется при прошивке, когда в config.ini
// не задана корректная скорость.
const DefaultFlashBaudRate = "115200"

// FlashJob — полностью собранное задание на прошивку устройства.
type FlashJob struct {
	Port        string
	BaudRate    string
	ProjectPath string
	Images      []ImageAssignment
	Erase       bool // стереть всю flash-память перед записью
}
