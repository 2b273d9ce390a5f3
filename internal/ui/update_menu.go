package ui

import (
	"context"
	"time"

	"espmanager/internal/domain/models"
)

// gitDateLayout — формат дат, который отдает git show --format=%ci.
const gitDateLayout = "2006-01-02 15:04:05 -0700"

// updateMenu показывает состояние обновлений и по согласию пользователя
// подтягивает новую версию.
func (u *UI) updateMenu(ctx context.Context) {
	u.con.Blank()
	u.con.Separator("ESP32 Manager — обновление")
	u.con.Blank()

	status := u.app.Updates.Status(ctx)
	switch status {
	case models.UpdateUpToDate, models.UpdateUncommitted, models.UpdateAhead, models.UpdateAvailable:
	default:
		u.con.Warn("%s. Устраните проблему перед обновлением.", status)
		return
	}
	if status == models.UpdateAhead {
		u.con.Warn("Локальная копия впереди удаленной ветки.")
		u.con.Warn("Закоммитьте или отложите изменения, чтобы обновляться.")
		return
	}
	if status == models.UpdateUncommitted {
		u.con.Warn("Есть незакоммиченные изменения, обновление все равно возможно.")
	}

	details, err := u.app.Updates.Details(ctx)
	if err != nil {
		u.con.Error("Не удалось получить сведения об обновлении: %v", err)
		return
	}

	if details.Status == models.UpdateUpToDate {
		u.con.Info("Обновлений нет.")
		u.con.Info("  Текущий коммит: %s от %s", shortHash(details.LocalHash), details.LocalDate)
		return
	}

	u.con.Info("Доступно обновление!")
	u.con.Print("  Текущий  : %s от %s", shortHash(details.LocalHash), details.LocalDate)
	u.con.Print("  Последний: %s от %s", shortHash(details.RemoteHash), details.RemoteDate)
	u.con.Print("  Отставание: коммитов: %d, дней: %d", details.Behind, daysBetween(details.LocalDate, details.RemoteDate))
	u.con.Print("  Последнее сообщение: %s", details.Subject)
	u.con.Blank()

	if !u.con.Confirm("Обновить сейчас?") {
		u.con.Info("Обновление отложено.")
		return
	}
	if err := u.app.Updates.Pull(ctx); err != nil {
		u.con.Error("Обновление не удалось: %v", err)
		u.con.Warn("Возможные причины: конфликт слияния, локальные изменения, нет доступа.")
		return
	}
	u.con.Success("Обновление установлено.")
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// daysBetween считает разницу в днях между двумя датами git.
// При нечитаемой дате возвращается ноль, это не повод падать.
func daysBetween(local, remote string) int {
	from, err := time.Parse(gitDateLayout, local)
	if err != nil {
		return 0
	}
	to, err := time.Parse(gitDateLayout, remote)
	if err != nil {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
