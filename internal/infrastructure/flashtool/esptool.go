// Package flashtool вызывает внешнюю утилиту esptool для записи
// прошивки. Сам протокол передачи реализует утилита, здесь только
// сборка аргументов и запуск процесса.
package flashtool

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
)

// Esptool реализует интерфейс ports.Flasher запуском esptool как
// внешнего процесса. Неудачная прошивка не повторяется автоматически.
type Esptool struct {
	path string
	log  ports.Logger
}

// NewEsptool создает новый экземпляр Esptool. path — имя или полный
// путь исполняемого файла esptool.
func NewEsptool(path string, log ports.Logger) ports.Flasher {
	return &Esptool{path: path, log: log}
}

// Flash выполняет задание на прошивку, транслируя вывод утилиты в
// консоль. Отмена контекста прерывает процесс.
func (e *Esptool) Flash(ctx context.Context, job models.FlashJob) error {
	args, err := buildArgs(job)
	if err != nil {
		return err
	}

	e.log.Debug("запуск: %s %v", e.path, args)
	cmd := exec.CommandContext(ctx, e.path, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ошибка прошивки через esptool: %w", err)
	}
	return nil
}

// buildArgs собирает аргументы esptool для задания. Порядок аргументов
// фиксирован, пары адрес-файл идут в порядке ключей config.ini.
func buildArgs(job models.FlashJob) ([]string, error) {
	if len(job.Images) == 0 {
		return nil, fmt.Errorf("в задании на прошивку нет bin-файлов")
	}

	args := []string{
		"--chip", "esp32",
		"--port", job.Port,
		"--baud", job.BaudRate,
		"--before", "default_reset",
		"--after", "hard_reset",
		"write_flash",
		"-z",
		"--flash_mode", "dio",
		"--flash_freq", "40m",
		"--flash_size", "detect",
	}
	if job.Erase {
		args = append(args, "--erase")
	}

	for _, img := range job.Images {
		if img.Address == "" {
			return nil, fmt.Errorf("для файла %s не задан адрес памяти", img.File)
		}
		args = append(args, img.Address, filepath.Join(job.ProjectPath, img.File))
	}
	return args, nil
}
