// Package app собирает сервисы приложения в один узел.
package app

import (
	"espmanager/internal/config"
	"espmanager/internal/domain/ports"
	"espmanager/internal/infrastructure/flashtool"
	"espmanager/internal/infrastructure/serialport"
	"espmanager/internal/infrastructure/storage"
	"espmanager/internal/infrastructure/update"
	"espmanager/internal/service/catalog"
	"espmanager/internal/service/firmware"
	"espmanager/internal/service/negotiation"
	"espmanager/internal/service/session"
	"espmanager/internal/service/validation"
)

// App держит готовые к работе сервисы. Все зависимости создаются один
// раз при запуске и передаются явно, без глобального состояния.
type App struct {
	Settings   config.Settings
	Log        ports.Logger
	Store      ports.ConfigStore
	Lister     ports.PortLister
	Catalog    *catalog.Service
	Negotiator *negotiation.Negotiator
	Session    *session.Service
	Firmware   *firmware.Service
	Updates    ports.UpdateChecker
}

// New создает новый экземпляр App с реальными адаптерами.
func New(settings config.Settings, log ports.Logger) *App {
	store := storage.NewIniConfigStore()
	opener := serialport.NewOpener()
	validator := validation.NewValidator(store, log)

	return &App{
		Settings:   settings,
		Log:        log,
		Store:      store,
		Lister:     serialport.NewLister(log),
		Catalog:    catalog.NewService(settings.ProjectsDir, validator, log),
		Negotiator: negotiation.NewNegotiator(opener, store, log),
		Session:    session.NewService(opener, log),
		Firmware:   firmware.NewService(store, flashtool.NewEsptool(settings.EsptoolPath, log), log),
		Updates:    update.NewGitChecker(".", log),
	}
}
