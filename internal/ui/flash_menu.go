package ui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"espmanager/internal/domain/models"
	"espmanager/internal/service/validation"
)

// flashMenu показывает список проектов и ведет выбранный проект либо
// к прошивке, либо к устранению проблем.
func (u *UI) flashMenu(ctx context.Context) {
	u.con.Blank()
	u.con.Separator("ESP32 Manager — прошивка")
	u.con.Blank()

	projects, err := u.app.Catalog.Scan()
	if errors.Is(err, models.ErrRootNotFound) {
		u.con.Warn("Папка проектов '%s' не найдена. Создайте ее и добавьте проекты.", u.app.Catalog.Root())
		return
	}
	if err != nil {
		u.con.Error("Не удалось прочитать папку проектов: %v", err)
		return
	}
	if len(projects) == 0 {
		u.con.Warn("В папке '%s' нет проектов. Добавьте проекты и попробуйте снова.", u.app.Catalog.Root())
		return
	}

	u.con.Info("Выберите проект для прошивки:")
	for i, p := range projects {
		if p.Flashable() {
			u.con.Info("  [%d] %s", i+1, p.Name)
		} else {
			u.con.Warn("  [%d] %s — %s", i+1, p.Name, p.Validity())
		}
	}
	u.con.Blank()

	choice := u.con.Prompt("Введите номер проекта или 'exit':")
	if strings.EqualFold(choice, "exit") {
		return
	}
	idx, ok := u.promptIndex(choice, len(projects))
	if !ok {
		u.con.Warn("Нет такого проекта, возврат в меню.")
		return
	}
	u.handleProject(ctx, projects[idx])
}

// handleProject прошивает готовый проект, а проблемному показывает
// список проблем с подсказками и меню исправлений.
func (u *UI) handleProject(ctx context.Context, p *models.Project) {
	u.con.Blank()
	u.con.Info("Проект: %s", p.Name)
	for _, w := range p.Warnings {
		u.con.Warn("%s", w)
	}

	if p.Flashable() {
		u.flashProject(ctx, p)
		return
	}

	u.con.Warn("Найдены проблемы:")
	for i, issue := range p.Issues {
		u.con.Error("  [%d] %s", i+1, issue)
		u.con.Print("      Подсказка: %s", issue.Kind.Suggestion())
	}
	u.fixMenu(p)

	if _, err := u.app.Catalog.Revalidate(p.Name); err != nil {
		u.con.Error("Повторная проверка не удалась: %v", err)
	}
	u.flashMenu(ctx)
}

// fixMenu предлагает способы устранения проблем проекта.
func (u *UI) fixMenu(p *models.Project) {
	u.con.Blank()
	u.con.Info("Доступные действия:")
	u.con.Print("  [1] Открыть папку для ручного исправления")
	u.con.Print("  [2] Сгенерировать config.ini заново")
	u.con.Print("  [3] Удалить подпапки (если есть)")

	switch choice := u.con.Prompt(""); choice {
	case "1":
		if err := openFolder(p.Path); err != nil {
			u.con.Error("Не удалось открыть папку: %v", err)
		}
		u.con.Prompt("Нажмите Enter для повторной проверки проекта:")
	case "2":
		u.generateConfig(p.Path)
	case "3":
		u.removeSubfolders(p.Path)
	default:
		if !strings.EqualFold(choice, "exit") {
			u.con.Warn("Нет такого пункта, возврат в меню.")
		}
	}
}

// flashProject выбирает порт и запускает прошивку проекта.
func (u *UI) flashProject(ctx context.Context, p *models.Project) {
	port, ok := u.pickPort()
	if !ok {
		u.con.Warn("Порт не выбран, возврат в меню.")
		return
	}
	erase := u.con.Confirm("Стереть flash-память перед прошивкой?")

	job, err := u.app.Firmware.PrepareJob(p, port, erase)
	if err != nil {
		u.con.Error("Не удалось подготовить прошивку: %v", err)
		return
	}

	u.con.Blank()
	u.con.Info("Прошивка %s через %s на скорости %s...", p.Name, job.Port, job.BaudRate)
	if err := u.app.Firmware.Flash(ctx, job); err != nil {
		u.con.Error("Прошивка не удалась: %v", err)
		return
	}
	u.con.Blank()
	u.con.Success("Прошивка завершена.")
}

// generateConfig собирает скорость и адреса для всех bin-файлов папки
// и записывает новый config.ini. Прежний файл перезаписывается.
func (u *UI) generateConfig(projectPath string) {
	entries, err := os.ReadDir(projectPath)
	if err != nil {
		u.con.Error("Не удалось прочитать папку %s: %v", projectPath, err)
		return
	}
	var binFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), models.BinExtension) {
			binFiles = append(binFiles, e.Name())
		}
	}
	if len(binFiles) == 0 {
		u.con.Error("В папке нет bin-файлов, генерировать нечего.")
		return
	}

	if u.app.Store.Exists(projectPath) {
		u.con.Warn("config.ini уже существует и будет перезаписан.")
	}
	u.con.Blank()
	u.con.Info("Найдены bin-файлы: %s", strings.Join(binFiles, ", "))

	baud, ok := u.promptBaudRate()
	if !ok {
		return
	}

	settings := &models.ProjectSettings{BaudRate: baud}
	used := make(map[string]bool)
	for _, name := range binFiles {
		for {
			address := u.con.Prompt("Адрес памяти для '" + name + "':")
			if strings.EqualFold(address, "exit") {
				return
			}
			if !validation.ValidAddress(address) {
				u.con.Warn("Неверный формат адреса. Используйте hex, например 0x10000.")
				continue
			}
			if used[address] {
				u.con.Warn("Адрес %s уже занят, введите уникальный.", address)
				continue
			}
			used[address] = true
			settings.Images = append(settings.Images, models.ImageAssignment{File: name, Address: address})
			break
		}
	}

	if err := u.app.Store.Generate(projectPath, settings); err != nil {
		u.con.Error("Не удалось записать config.ini: %v", err)
		return
	}
	u.con.Blank()
	u.con.Success("config.ini сгенерирован.")
}

// removeSubfolders удаляет подпапки папки проекта вместе с содержимым.
func (u *UI) removeSubfolders(projectPath string) {
	entries, err := os.ReadDir(projectPath)
	if err != nil {
		u.con.Error("Не удалось прочитать папку %s: %v", projectPath, err)
		return
	}
	removed := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(projectPath, e.Name())
		if err := os.RemoveAll(sub); err != nil {
			u.con.Error("Не удалось удалить %s: %v", sub, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		u.con.Success("Подпапки удалены.")
	} else {
		u.con.Info("Подпапок не найдено.")
	}
}

// promptBaudRate запрашивает скорость до получения числа либо команды
// выхода.
func (u *UI) promptBaudRate() (string, bool) {
	for {
		baud := u.con.Prompt("Введите Baud_Rate:")
		if strings.EqualFold(baud, "exit") {
			return "", false
		}
		if _, err := strconv.Atoi(baud); err == nil {
			return baud, true
		}
		u.con.Warn("Неверная скорость, вводите только цифры.")
	}
}

// openFolder открывает папку в файловом менеджере системы.
func openFolder(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
