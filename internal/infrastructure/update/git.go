// Package update проверяет наличие обновлений приложения через git.
// Git вызывается как внешняя утилита, его вывод трактуется как есть.
package update

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
)

// runner запускает git с аргументами и возвращает обрезанный stdout.
// Выделен в интерфейс ради подмены в тестах.
type runner interface {
	run(ctx context.Context, args ...string) (string, error)
}

// execRunner запускает git как внешний процесс в папке репозитория.
type execRunner struct {
	dir string
}

func (r execRunner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("ошибка git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// GitChecker реализует интерфейс ports.UpdateChecker поверх рабочей
// копии git. Обновление поддерживается только на ветках из
// models.SupportedBranches.
type GitChecker struct {
	git runner
	log ports.Logger
}

// NewGitChecker создает новый экземпляр GitChecker для рабочей копии
// в папке dir.
func NewGitChecker(dir string, log ports.Logger) ports.UpdateChecker {
	return &GitChecker{git: execRunner{dir: dir}, log: log}
}

// Status возвращает состояние обновлений рабочей копии. Проверки идут
// от самых грубых к самым точным, первая сработавшая дает ответ.
func (c *GitChecker) Status(ctx context.Context) models.UpdateStatus {
	if _, err := exec.LookPath("git"); err != nil {
		return models.UpdateGitNotInstalled
	}
	if _, err := c.git.run(ctx, "rev-parse", "--is-inside-work-tree"); err != nil {
		return models.UpdateNotARepo
	}

	branch, err := c.git.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return models.UpdateCheckError
	}
	if !models.SupportedBranch(branch) {
		return models.UpdateUnsupportedBranch
	}

	// fetch заодно проверяет доступность удаленного репозитория
	if _, err := c.git.run(ctx, "fetch", "--quiet"); err != nil {
		return models.UpdateOffline
	}

	dirty, err := c.git.run(ctx, "status", "--porcelain")
	if err != nil {
		return models.UpdateCheckError
	}
	if dirty != "" {
		return models.UpdateUncommitted
	}

	ahead, err := c.git.run(ctx, "rev-list", "--count", "origin/"+branch+".."+branch)
	if err != nil {
		return models.UpdateCheckError
	}
	if ahead != "" && ahead != "0" {
		return models.UpdateAhead
	}

	local, err := c.git.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return models.UpdateCheckError
	}
	remote, err := c.git.run(ctx, "rev-parse", "origin/"+branch)
	if err != nil {
		return models.UpdateCheckError
	}
	if local == remote {
		return models.UpdateUpToDate
	}
	return models.UpdateAvailable
}

// Details собирает сведения о доступном обновлении: хэши и даты
// локального и удаленного коммитов, отставание и заголовок последнего
// коммита.
func (c *GitChecker) Details(ctx context.Context) (*models.UpdateDetails, error) {
	branch, err := c.git.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, err
	}
	local, err := c.git.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}
	remote, err := c.git.run(ctx, "rev-parse", "origin/"+branch)
	if err != nil {
		return nil, err
	}

	d := &models.UpdateDetails{
		Branch:     branch,
		LocalHash:  local,
		RemoteHash: remote,
	}
	if d.LocalDate, err = c.git.run(ctx, "show", "-s", "--format=%ci", local); err != nil {
		return nil, err
	}
	if local == remote {
		d.Status = models.UpdateUpToDate
		return d, nil
	}

	d.Status = models.UpdateAvailable
	if d.RemoteDate, err = c.git.run(ctx, "show", "-s", "--format=%ci", remote); err != nil {
		return nil, err
	}
	behind, err := c.git.run(ctx, "rev-list", "--count", local+"..origin/"+branch)
	if err != nil {
		return nil, err
	}
	if d.Behind, err = strconv.Atoi(behind); err != nil {
		return nil, fmt.Errorf("неожиданный ответ git rev-list --count: %q", behind)
	}
	if d.Subject, err = c.git.run(ctx, "log", "-1", "--pretty=%s", "origin/"+branch); err != nil {
		return nil, err
	}
	return d, nil
}

// Pull подтягивает обновление из удаленного репозитория.
func (c *GitChecker) Pull(ctx context.Context) error {
	branch, err := c.git.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return err
	}
	if _, err := c.git.run(ctx, "pull", "origin", branch); err != nil {
		c.log.Error("обновление не удалось: %v", err)
		return fmt.Errorf("ошибка обновления: %w", err)
	}
	return nil
}
