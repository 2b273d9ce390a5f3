// Package config загружает настройки приложения из espmanager.toml
// с возможностью переопределения через переменные окружения.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultFileName — имя файла настроек рядом с исполняемым файлом.
const DefaultFileName = "espmanager.toml"

// envPrefix — префикс переменных окружения, переопределяющих настройки.
const envPrefix = "ESPMANAGER_"

// Settings — настройки приложения. Файл настроек необязателен:
// при его отсутствии используются значения по умолчанию.
type Settings struct {
	ProjectsDir  string `toml:"projects_dir"` // папка с проектами прошивок
	LogDir       string `toml:"log_dir"`      // папка журналов, пустая отключает файл
	PurgeOldLogs bool   `toml:"purge_old_logs"`
	Debug        bool   `toml:"debug"`
	DefaultBaud  int    `toml:"default_baud"` // скорость по умолчанию при генерации config.ini
	EsptoolPath  string `toml:"esptool_path"` // путь к утилите прошивки
}

// Default возвращает настройки по умолчанию.
func Default() Settings {
	return Settings{
		ProjectsDir:  "esp32",
		LogDir:       "logs",
		PurgeOldLogs: true,
		DefaultBaud:  115200,
		EsptoolPath:  "esptool",
	}
}

// Load читает настройки из файла по указанному пути и применяет
// переопределения из окружения. Отсутствующий файл не считается
// ошибкой. Файл .env в рабочей папке подхватывается автоматически.
func Load(path string) (Settings, error) {
	s := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return s, fmt.Errorf("ошибка разбора файла настроек %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return s, fmt.Errorf("ошибка чтения файла настроек %s: %w", path, err)
	}

	// .env удобен при разработке, его отсутствие ничего не значит
	_ = godotenv.Load()
	applyEnv(&s)

	if s.ProjectsDir == "" {
		return s, fmt.Errorf("не задана папка проектов (projects_dir)")
	}
	if s.DefaultBaud <= 0 {
		return s, fmt.Errorf("недопустимая скорость по умолчанию: %d", s.DefaultBaud)
	}
	return s, nil
}

// applyEnv переопределяет настройки значениями из окружения.
func applyEnv(s *Settings) {
	if v, ok := os.LookupEnv(envPrefix + "PROJECTS_DIR"); ok {
		s.ProjectsDir = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_DIR"); ok {
		s.LogDir = v
	}
	if v, ok := os.LookupEnv(envPrefix + "ESPTOOL_PATH"); ok {
		s.EsptoolPath = v
	}
	if v, ok := os.LookupEnv(envPrefix + "DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Debug = b
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "PURGE_OLD_LOGS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.PurgeOldLogs = b
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "DEFAULT_BAUD"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.DefaultBaud = n
		}
	}
}
