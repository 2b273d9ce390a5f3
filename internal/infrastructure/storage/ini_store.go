package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"

	"gopkg.in/ini.v1"
)

// IniConfigStore реализует интерфейс ports.ConfigStore поверх файла
// config.ini в папке проекта. Хранилище не держит состояния, каждый
// вызов заново читает или переписывает файл.
type IniConfigStore struct{}

// NewIniConfigStore создает новый экземпляр IniConfigStore.
func NewIniConfigStore() ports.ConfigStore {
	return &IniConfigStore{}
}

// Exists проверяет наличие config.ini в папке проекта.
func (s *IniConfigStore) Exists(projectPath string) bool {
	_, err := os.Stat(s.configPath(projectPath))
	return err == nil
}

// Load читает секцию [Settings] целиком, сохраняя порядок ключей файла.
func (s *IniConfigStore) Load(projectPath string) (*models.ProjectSettings, error) {
	path := s.configPath(projectPath)
	cfg, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config.ini не найден в %s: %w", projectPath, models.ErrConfigMissing)
		}
		return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
	}

	sec, err := cfg.GetSection(models.SettingsSection)
	if err != nil {
		return nil, fmt.Errorf("нет секции [%s] в %s: %w", models.SettingsSection, path, models.ErrSectionMissing)
	}

	settings := &models.ProjectSettings{}
	for _, key := range sec.KeyStrings() {
		if key == models.BaudRateKey {
			settings.BaudRate = sec.Key(key).String()
			continue
		}
		if strings.HasSuffix(key, models.BinExtension) {
			settings.Images = append(settings.Images, models.ImageAssignment{
				File:    key,
				Address: sec.Key(key).String(),
			})
		}
	}
	return settings, nil
}

// SetBaudRate записывает новое значение Baud_Rate, сохраняя остальные
// ключи секции без изменений. Отсутствующий ключ создается.
func (s *IniConfigStore) SetBaudRate(projectPath string, baudRate int) error {
	path := s.configPath(projectPath)
	cfg, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config.ini не найден в %s: %w", projectPath, models.ErrConfigMissing)
		}
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}

	sec, err := cfg.GetSection(models.SettingsSection)
	if err != nil {
		return fmt.Errorf("нет секции [%s] в %s: %w", models.SettingsSection, path, models.ErrSectionMissing)
	}

	sec.Key(models.BaudRateKey).SetValue(strconv.Itoa(baudRate))
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", path, err)
	}
	return nil
}

// Generate создает config.ini с переданными назначениями.
// Существующий файл перезаписывается целиком, без слияния.
func (s *IniConfigStore) Generate(projectPath string, settings *models.ProjectSettings) error {
	cfg := ini.Empty()
	sec, err := cfg.NewSection(models.SettingsSection)
	if err != nil {
		return fmt.Errorf("ошибка создания секции [%s]: %w", models.SettingsSection, err)
	}

	if _, err := sec.NewKey(models.BaudRateKey, settings.BaudRate); err != nil {
		return fmt.Errorf("ошибка записи ключа %s: %w", models.BaudRateKey, err)
	}
	for _, img := range settings.Images {
		if _, err := sec.NewKey(img.File, img.Address); err != nil {
			return fmt.Errorf("ошибка записи ключа %s: %w", img.File, err)
		}
	}

	path := s.configPath(projectPath)
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", path, err)
	}
	return nil
}

func (s *IniConfigStore) configPath(projectPath string) string {
	return filepath.Join(projectPath, models.ConfigFileName)
}
