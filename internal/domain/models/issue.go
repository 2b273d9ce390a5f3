package models

import "fmt"

// IssueKind перечисляет виды блокирующих проблем проекта.
type IssueKind int

const (
	IssueMissingConfig IssueKind = iota
	IssueMissingSection
	IssueAddressConflict
	IssueUnreferencedBinary
	IssueDanglingReference
	IssueSubfoldersDetected
	IssueInvalidAddress
	IssueInvalidBaudRate
	IssueNegativeBaudRate
	IssueInternal
)

// Issue — блокирующая проблема, найденная при проверке проекта.
// Значение неизменяемо и пересоздается целиком при каждой проверке.
type Issue struct {
	Kind  IssueKind
	Name  string // имя bin-файла, к которому относится проблема
	Peer  string // первый владелец адреса при конфликте
	Value string // адрес, значение Baud_Rate или текст внутренней ошибки
}

// String возвращает текст проблемы для вывода пользователю.
func (i Issue) String() string {
	switch i.Kind {
	case IssueMissingConfig:
		return "отсутствует config.ini"
	case IssueMissingSection:
		return "в config.ini нет секции [Settings]"
	case IssueAddressConflict:
		return fmt.Sprintf("конфликт адресов: '%s' и '%s' используют один адрес %s", i.Name, i.Peer, i.Value)
	case IssueUnreferencedBinary:
		return fmt.Sprintf("bin-файл '%s' не упомянут в config.ini", i.Name)
	case IssueDanglingReference:
		return fmt.Sprintf("bin-файл '%s' указан в config.ini, но отсутствует в папке", i.Name)
	case IssueSubfoldersDetected:
		return fmt.Sprintf("в папке проекта найдены подпапки: %s", i.Value)
	case IssueInvalidAddress:
		return fmt.Sprintf("недопустимый адрес памяти %s для '%s': ожидается hex вида 0x10000", i.Value, i.Name)
	case IssueInvalidBaudRate:
		return "Baud_Rate в config.ini отсутствует или не является числом"
	case IssueNegativeBaudRate:
		return fmt.Sprintf("недопустимый Baud_Rate %s: значение должно быть больше нуля", i.Value)
	case IssueInternal:
		return fmt.Sprintf("внутренняя ошибка проверки: %s", i.Value)
	default:
		return "неизвестная проблема"
	}
}

// Suggestion возвращает подсказку по устранению проблемы данного вида.
func (k IssueKind) Suggestion() string {
	switch k {
	case IssueMissingConfig, IssueMissingSection:
		return "Сгенерируйте config.ini через пункт автогенерации."
	case IssueAddressConflict:
		return "Убедитесь, что все адреса памяти в config.ini уникальны."
	case IssueUnreferencedBinary:
		return "Добавьте отсутствующий bin-файл в секцию [Settings] файла config.ini."
	case IssueDanglingReference:
		return "Убедитесь, что указанный bin-файл существует в папке проекта."
	case IssueSubfoldersDetected:
		return "Удалите подпапки из папки проекта."
	case IssueInvalidAddress:
		return "Проверьте, что адреса в config.ini записаны в hex-формате (например, 0x10000)."
	case IssueInvalidBaudRate, IssueNegativeBaudRate:
		return "Укажите корректный Baud_Rate (например, 115200) в секции [Settings]."
	default:
		return "Проверьте и устраните проблему вручную."
	}
}

// WarningKind перечисляет виды предупреждений.
type WarningKind int

const (
	WarnUnusualBaudRate WarningKind = iota
	WarnVeryHighBaudRate
)

// Warning — неблокирующее предупреждение о необычной, но допустимой
// настройке. Жизненный цикл совпадает с Issue.
type Warning struct {
	Kind  WarningKind
	Value string // значение Baud_Rate
}

// String возвращает текст предупреждения для вывода пользователю.
func (w Warning) String() string {
	switch w.Kind {
	case WarnUnusualBaudRate:
		return fmt.Sprintf("нетипичная скорость Baud_Rate: %s", w.Value)
	case WarnVeryHighBaudRate:
		return fmt.Sprintf("очень высокая скорость Baud_Rate: %s, значения выше 2000000 могут не работать", w.Value)
	default:
		return "неизвестное предупреждение"
	}
}
