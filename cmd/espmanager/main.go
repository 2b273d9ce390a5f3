// Команда espmanager — интерактивный менеджер проектов прошивки ESP32:
// проверка проектов, прошивка через esptool, консольные сессии с
// устройством и обновление самого приложения через git.
package main

import (
	"context"
	"fmt"
	"os"

	"espmanager/internal/app"
	"espmanager/internal/config"
	"espmanager/internal/infrastructure/logger"
	"espmanager/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(config.DefaultFileName)
	if err != nil {
		return fmt.Errorf("ошибка загрузки настроек: %w", err)
	}

	log, err := logger.New(logger.Options{
		Dir:      settings.LogDir,
		Debug:    settings.Debug,
		PurgeOld: settings.PurgeOldLogs,
	})
	if err != nil {
		return fmt.Errorf("ошибка настройки журнала: %w", err)
	}

	con := ui.NewConsole(os.Stdin, os.Stdout)

	// При первом запуске папки проектов еще нет: создаем и просим
	// наполнить, работать пока не с чем.
	if _, err := os.Stat(settings.ProjectsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(settings.ProjectsDir, 0755); err != nil {
			return fmt.Errorf("ошибка создания папки проектов %s: %w", settings.ProjectsDir, err)
		}
		con.Warn("Папки '%s' не было, она создана. Добавьте проекты и запустите снова.", settings.ProjectsDir)
		return nil
	}

	a := app.New(settings, log)
	if err := ui.New(a, con).Run(context.Background()); err != nil {
		return err
	}

	con.Info("Завершение работы...")
	con.Separator("ESP32 Manager")
	return nil
}
