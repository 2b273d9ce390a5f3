package models

// ConfigFileName — имя файла настроек внутри папки проекта.
const ConfigFileName = "config.ini"

// BinExtension — расширение файлов прошивки.
const BinExtension = ".bin"

// SettingsSection — имя обязательной секции файла настроек.
const SettingsSection = "Settings"

// BaudRateKey — ключ скорости обмена внутри секции настроек.
const BaudRateKey = "Baud_Rate"

// ImageAssignment связывает bin-файл с адресом памяти из config.ini.
type ImageAssignment struct {
	File    string // имя файла с расширением .bin
	Address string // hex-адрес вида 0x10000, как записан в файле
}

// ProjectSettings — разобранное содержимое секции [Settings].
// Порядок Images повторяет порядок ключей в файле.
type ProjectSettings struct {
	BaudRate string
	Images   []ImageAssignment
}

// Image возвращает назначение для файла с данным именем.
// Сравнение имен чувствительно к регистру.
func (s ProjectSettings) Image(name string) (ImageAssignment, bool) {
	for _, img := range s.Images {
		if img.File == name {
			return img, true
		}
	}
	return ImageAssignment{}, false
}
