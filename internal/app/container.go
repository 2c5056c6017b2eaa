// Package app wires application services with infrastructure adapters.
package app

import (
	"github.com/stevef00/cmdgen/internal/application/doctor"
	"github.com/stevef00/cmdgen/internal/domain"
	"github.com/stevef00/cmdgen/internal/infrastructure/ai"
	"github.com/stevef00/cmdgen/internal/infrastructure/config"
	"github.com/stevef00/cmdgen/internal/infrastructure/history"
	"github.com/stevef00/cmdgen/internal/pkg/logger"
	"github.com/stevef00/cmdgen/internal/ports"
	"github.com/stevef00/cmdgen/internal/services"
)

// Container holds the dependency graph for one invocation.
type Container struct {
	Config        domain.SessionConfig
	Warnings      []string
	Session       *services.Session
	HistoryStore  ports.HistoryStore
	CommandLog    ports.CommandLog
	DoctorService *doctor.Service
	Logger        ports.Logger
}

// BuildContainer constructs the dependency graph. The line source, router,
// and presenter are wired by the CLI layer, which owns the terminal.
func BuildContainer(verbose bool) (*Container, error) {
	cfg, warnings, err := config.NewLoader("").Load()
	if err != nil {
		return nil, err
	}

	log := logger.NewSlog(verbose)
	historyStore := history.NewFileStore(cfg.HistoryFile, cfg.MaxHistory)
	commandLog := history.NewCommandLog(cfg.CommandLogPath)

	session := &services.Session{
		Config:     cfg,
		History:    historyStore,
		Generator:  ai.NewClient(cfg),
		CommandLog: commandLog,
		Logger:     log,
	}

	return &Container{
		Config:        cfg,
		Warnings:      warnings,
		Session:       session,
		HistoryStore:  historyStore,
		CommandLog:    commandLog,
		DoctorService: &doctor.Service{Config: cfg},
		Logger:        log,
	}, nil
}
