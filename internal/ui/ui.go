package ui

import (
	"context"
	"strconv"

	"espmanager/internal/app"
)

// UI ведет диалог с пользователем в терминале. Меню повторяется до
// команды выхода либо отмены контекста.
type UI struct {
	app *app.App
	con *Console
}

// New создает новый экземпляр UI.
func New(a *app.App, con *Console) *UI {
	return &UI{app: a, con: con}
}

// Run показывает главное меню и обрабатывает выбор пользователя.
func (u *UI) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		u.con.Blank()
		u.con.Separator("ESP32 Manager — главное меню")
		u.con.Blank()

		status := u.app.Updates.Status(ctx)
		portCount := 0
		if ports, err := u.app.Lister.List(); err == nil {
			portCount = len(ports)
		}

		u.con.Print("  [1] Прошить проект")
		u.con.Print("  [2] Связь с устройством (портов доступно: %d)", portCount)
		u.con.Print("  [3] Обновления (%s)", status)
		u.con.Print("  [4] Справка")
		u.con.Print("  [5] Выход")
		u.con.Blank()

		switch choice := u.con.Prompt("Выберите пункт:"); choice {
		case "1":
			u.flashMenu(ctx)
		case "2":
			u.commMenu(ctx)
		case "3":
			u.updateMenu(ctx)
		case "4":
			u.help()
		case "5", "exit":
			return nil
		default:
			u.con.Warn("Нет такого пункта, попробуйте еще раз.")
		}
	}
}

func (u *UI) help() {
	u.con.Blank()
	u.con.Info("ESP32 Manager — справка")
	u.con.Print("Инструмент прошивки устройств ESP32 из папок внутри '%s'.", u.app.Settings.ProjectsDir)
	u.con.Print("Каждая папка проекта должна содержать bin-файлы и config.ini.")
	u.con.Print("Поддерживается автогенерация config.ini и обновление через git.")
}

// promptIndex разбирает выбор пункта нумерованного списка.
// Возвращает индекс от нуля и признак, что ввод был числом из диапазона.
func (u *UI) promptIndex(raw string, count int) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n - 1, true
}
