// Package firmware собирает задание на прошивку из проверенного
// проекта и передает его исполнителю.
package firmware

import (
	"context"
	"fmt"
	"strconv"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
)

// Service превращает проект каталога в задание для ports.Flasher.
// Прошивка доступна только проектам без блокирующих проблем.
type Service struct {
	store   ports.ConfigStore
	flasher ports.Flasher
	log     ports.Logger
}

// NewService создает новый экземпляр Service
func NewService(store ports.ConfigStore, flasher ports.Flasher, log ports.Logger) *Service {
	return &Service{
		store:   store,
		flasher: flasher,
		log:     log,
	}
}

// PrepareJob собирает задание на прошивку проекта через указанный порт.
// Скорость берется из config.ini; нечисловое значение заменяется
// скоростью по умолчанию, как и при отсутствии ключа.
func (s *Service) PrepareJob(project *models.Project, port string, erase bool) (models.FlashJob, error) {
	if !project.Flashable() {
		return models.FlashJob{}, fmt.Errorf("проект %s не готов к прошивке: проблем: %d", project.Name, len(project.Issues))
	}

	settings, err := s.store.Load(project.Path)
	if err != nil {
		return models.FlashJob{}, fmt.Errorf("ошибка чтения настроек проекта %s: %w", project.Name, err)
	}
	if len(settings.Images) == 0 {
		return models.FlashJob{}, fmt.Errorf("в config.ini проекта %s нет bin-файлов", project.Name)
	}

	baud := settings.BaudRate
	if _, err := strconv.Atoi(baud); err != nil || baud == "" {
		s.log.Warn("скорость %q проекта %s непригодна, используется %s", baud, project.Name, models.DefaultFlashBaudRate)
		baud = models.DefaultFlashBaudRate
	}

	return models.FlashJob{
		Port:        port,
		BaudRate:    baud,
		ProjectPath: project.Path,
		Images:      settings.Images,
		Erase:       erase,
	}, nil
}

// Flash выполняет задание. Неудача не повторяется автоматически,
// решение о повторе остается за пользователем.
func (s *Service) Flash(ctx context.Context, job models.FlashJob) error {
	s.log.Info("прошивка через %s на скорости %s, файлов: %d", job.Port, job.BaudRate, len(job.Images))
	if err := s.flasher.Flash(ctx, job); err != nil {
		return err
	}
	s.log.Info("прошивка завершена успешно")
	return nil
}
