package models

import "errors"

// Сигнальные ошибки уровня домена. Сервисы оборачивают их через %w,
// вызывающий код различает причины через errors.Is.
var (
	// ErrConfigMissing — в папке проекта нет config.ini.
	ErrConfigMissing = errors.New("config.ini not found")

	// ErrSectionMissing — config.ini есть, но секции [Settings] нет.
	ErrSectionMissing = errors.New("settings section not found")

	// ErrRootNotFound — корневая папка проектов не существует.
	ErrRootNotFound = errors.New("projects root not found")

	// ErrNoWorkingRate — перебор скоростей не нашел ни одной рабочей.
	ErrNoWorkingRate = errors.New("no working baud rate found")

	// ErrPortClosed — операция над уже закрытым портом.
	ErrPortClosed = errors.New("port is closed")
)
