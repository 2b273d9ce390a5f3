package ui

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"espmanager/internal/domain/models"
)

// commMenu выбирает источник скорости (проект либо ручной ввод),
// подтверждает связь и открывает консольную сессию с устройством.
func (u *UI) commMenu(ctx context.Context) {
	u.con.Blank()
	u.con.Separator("ESP32 Manager — связь с устройством")
	u.con.Blank()

	available, err := u.app.Lister.List()
	if err != nil || len(available) == 0 {
		u.con.Error("Последовательные порты не найдены.")
		return
	}

	projects, err := u.app.Catalog.Scan()
	if err != nil && !errors.Is(err, models.ErrRootNotFound) {
		u.con.Error("Не удалось прочитать папку проектов: %v", err)
		return
	}

	u.con.Info("Выберите проект для сессии:")
	u.con.Info("  [1] Временная сессия (своя скорость)")
	for i, p := range projects {
		u.con.Info("  [%d] %s", i+2, p.Name)
	}
	u.con.Blank()

	choice := u.con.Prompt("Введите номер или 'exit':")
	if strings.EqualFold(choice, "exit") {
		return
	}

	var (
		baudRate    int
		projectPath string
		title       string
	)
	if choice == "1" {
		raw, ok := u.promptBaudRate()
		if !ok {
			return
		}
		baudRate, _ = strconv.Atoi(raw)
		title = "Временная"
	} else {
		idx, ok := u.promptIndex(choice, len(projects)+1)
		if !ok || idx == 0 {
			u.con.Warn("Нет такого пункта, возврат в меню.")
			return
		}
		p := projects[idx-1]

		settings, err := u.app.Store.Load(p.Path)
		if err != nil {
			u.con.Error("Не удалось прочитать config.ini проекта %s: %v", p.Name, err)
			return
		}
		baudRate, err = strconv.Atoi(settings.BaudRate)
		if err != nil || baudRate <= 0 {
			u.con.Error("Baud_Rate в config.ini проекта %s отсутствует или не число.", p.Name)
			return
		}
		projectPath = p.Path
		title = p.Name
	}

	port, ok := u.pickPort()
	if !ok {
		u.con.Warn("Порт не выбран, возврат в меню.")
		return
	}

	u.con.Blank()
	u.con.Info("Подключение к %s на скорости %d...", port, baudRate)

	consent := func(first models.ProbeResult) bool {
		u.con.Warn("Связь на скорости %d не подтверждена (%s).", first.BaudRate, first.Outcome)
		return u.con.Confirm("Подобрать рабочую скорость автоматически?")
	}

	// Ctrl+C во время перебора отменяет контекст между попытками:
	// порт закрыт, приложение продолжает работу.
	sweepCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	rate, err := u.app.Negotiator.Negotiate(sweepCtx, port, baudRate, projectPath, nil, consent)
	stop()
	if errors.Is(err, models.ErrNoWorkingRate) {
		u.con.Warn("Рабочая скорость не найдена, возврат в меню.")
		return
	}
	if err != nil {
		u.con.Error("Подбор скорости прерван: %v", err)
		return
	}
	if rate != baudRate {
		u.con.Success("Связь подтверждена на скорости %d.", rate)
	}

	u.runSession(ctx, title, port, rate)
}

// runSession держит сессию с устройством до Ctrl+C.
func (u *UI) runSession(ctx context.Context, title, port string, baudRate int) {
	u.con.Blank()
	u.con.Separator("Сессия " + title + " начата")
	u.con.Print("Нажмите Ctrl+C для выхода из сессии.")
	u.con.Blank()

	sessionCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := u.app.Session.Run(sessionCtx, port, baudRate, u.con.Out()); err != nil {
		u.con.Error("Сессия оборвалась: %v", err)
	}

	u.con.Blank()
	u.con.Separator("Сессия " + title + " завершена")
}

// pickPort показывает найденные порты и возвращает выбранный. Пустой
// ввод выбирает порт, похожий на ESP32, если такой есть.
func (u *UI) pickPort() (string, bool) {
	infos, err := u.app.Lister.List()
	if err != nil || len(infos) == 0 {
		u.con.Error("Последовательные порты не найдены.")
		return "", false
	}

	u.con.Blank()
	u.con.Info("Доступные порты:")
	suggested := ""
	for i, info := range infos {
		marker := ""
		if info.LikelyESP32 {
			marker = " <-- похоже на ESP32"
			if suggested == "" {
				suggested = info.Name
			}
		}
		u.con.Info("  [%d] %s — %s%s", i+1, info.Name, info.Description, marker)
	}

	choice := u.con.Prompt("Выберите порт (Enter — предложенный):")
	if strings.EqualFold(choice, "exit") {
		return "", false
	}
	if choice == "" {
		if suggested == "" {
			u.con.Error("Предложенного порта нет, выберите вручную.")
			return "", false
		}
		return suggested, true
	}
	idx, ok := u.promptIndex(choice, len(infos))
	if !ok {
		u.con.Error("Нет такого порта, возврат в меню.")
		return "", false
	}
	return infos[idx].Name, true
}
