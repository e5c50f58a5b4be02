package api

import (
	"github.com/pagetribe/sleepwell/internal"
	"github.com/pagetribe/sleepwell/internal/service"
	"github.com/pagetribe/sleepwell/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Records() storage.RecordRepository
	Clock() internal.Clock
	MorningWindow() service.MorningWindow
}

type app struct {
	logger internal.Logger
	repo   storage.RecordRepository
	clock  internal.Clock
	window service.MorningWindow
}

func NewApp(logger internal.Logger, repo storage.RecordRepository, clock internal.Clock, window service.MorningWindow) App {
	return &app{logger: logger, repo: repo, clock: clock, window: window}
}

func (a *app) Logger() internal.Logger              { return a.logger }
func (a *app) Records() storage.RecordRepository    { return a.repo }
func (a *app) Clock() internal.Clock                { return a.clock }
func (a *app) MorningWindow() service.MorningWindow { return a.window }
