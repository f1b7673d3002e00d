package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okian/appraisal/internal/config"
	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/money"
	"github.com/okian/appraisal/internal/ui"
	"github.com/okian/appraisal/pkg/logger"
)

const defaultLogFile = "logs/tui.log"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs always go to a file.
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	if err := logger.InitFile(logFile); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	_ = logger.SetLevelString(cfg.LogLevel)
	log := logger.Named("tui")

	formulas, err := orderedFormulas(cfg)
	if err != nil {
		log.Error(ctx, "failed to build formulas", logger.Error(err))
		return
	}
	f, err := money.New(cfg.Locale, cfg.Currency)
	if err != nil {
		log.Error(ctx, "failed to build formatter", logger.Error(err))
		return
	}

	log.Info(ctx, "starting terminal ui", logger.String("preset", string(formulas[0].Preset())))
	p := tea.NewProgram(ui.NewModel(formulas, f, ui.WithLogger(log)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error(ctx, "terminal ui failed", logger.Error(err))
		os.Stderr.WriteString("terminal ui failed: " + err.Error() + "\n")
	}
}

// orderedFormulas builds every preset's formula with the configured default
// first.
func orderedFormulas(cfg *config.Config) ([]appraisal.Formula, error) {
	def := cfg.Preset()
	out := make([]appraisal.Formula, 0, len(appraisal.Presets()))
	for _, p := range appraisal.Presets() {
		f, err := appraisal.NewFormula(p, cfg.FormulaOptions()...)
		if err != nil {
			return nil, err
		}
		if p == def {
			out = append([]appraisal.Formula{f}, out...)
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
