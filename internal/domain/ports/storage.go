package ports

import "espmanager/internal/domain/models"

// ConfigStore определяет интерфейс для чтения и правки config.ini проекта.
// Реализация интерфейса находится в слое Infrastructure.
type ConfigStore interface {
	// Exists проверяет наличие config.ini в папке проекта
	Exists(projectPath string) bool

	// Load читает секцию [Settings] целиком.
	// Возвращает models.ErrConfigMissing, если файла нет,
	// и models.ErrSectionMissing, если нет секции [Settings].
	Load(projectPath string) (*models.ProjectSettings, error)

	// SetBaudRate записывает новое значение Baud_Rate, сохраняя
	// остальные ключи секции без изменений
	SetBaudRate(projectPath string, baudRate int) error

	// Generate создает config.ini с переданными назначениями.
	// Существующий файл перезаписывается целиком.
	Generate(projectPath string, settings *models.ProjectSettings) error
}
