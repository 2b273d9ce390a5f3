package models

// Validity описывает итоговую оценку проекта после проверки.
type Validity int

const (
	ValidityValid Validity = iota
	ValidityValidWithWarnings
	ValidityInvalid
)

// String возвращает человекочитаемое название оценки.
func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "готов к прошивке"
	case ValidityValidWithWarnings:
		return "готов, есть предупреждения"
	case ValidityInvalid:
		return "есть проблемы"
	default:
		return "неизвестно"
	}
}

// Project представляет одну папку прошивки внутри каталога проектов.
// Создается при сканировании каталога и обновляется на месте при
// повторной проверке после исправлений.
type Project struct {
	Name     string    // Имя папки (уникально в пределах каталога)
	Path     string    // Полный путь к папке проекта
	Issues   []Issue   // Блокирующие проблемы последней проверки
	Warnings []Warning // Предупреждения последней проверки
}

// Validity выводит оценку проекта из результатов последней проверки:
// непустой список проблем означает Invalid, предупреждения на оценку
// не влияют.
func (p *Project) Validity() Validity {
	if len(p.Issues) > 0 {
		return ValidityInvalid
	}
	if len(p.Warnings) > 0 {
		return ValidityValidWithWarnings
	}
	return ValidityValid
}

// Flashable сообщает, можно ли прошивать проект.
func (p *Project) Flashable() bool {
	return len(p.Issues) == 0
}
