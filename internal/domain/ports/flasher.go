package ports

import (
	"context"

	"espmanager/internal/domain/models"
)

// Flasher определяет интерфейс записи прошивки во flash-память устройства.
// Реализация вызывает внешнюю утилиту esptool.
type Flasher interface {
	// Flash выполняет задание на прошивку, транслируя вывод утилиты
	// в консоль. Отмена контекста прерывает процесс
	Flash(ctx context.Context, job models.FlashJob) error
}

// UpdateChecker определяет интерфейс проверки и установки обновлений
// самого приложения через git.
type UpdateChecker interface {
	// Status возвращает состояние обновлений рабочей копии
	Status(ctx context.Context) models.UpdateStatus

	// Details собирает сведения о доступном обновлении
	Details(ctx context.Context) (*models.UpdateDetails, error)

	// Pull подтягивает обновление из удаленного репозитория
	Pull(ctx context.Context) error
}
