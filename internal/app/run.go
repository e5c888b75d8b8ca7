package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vk/cellan/internal/analyser"
	"github.com/vk/cellan/internal/hcl"
	"github.com/vk/cellan/internal/model"
	"github.com/vk/cellan/internal/report"
)

// ErrInvalidModel is returned by Run when the analysis finished but the
// model cannot be used to generate code.
var ErrInvalidModel = errors.New("model is not valid")

// Run loads the configured model, analyses it and writes the report. The
// report is returned even when the model turns out to be invalid.
func (a *App) Run(ctx context.Context) (*report.Report, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	format, err := report.ParseFormat(a.config.OutputFormat)
	if err != nil {
		return nil, err
	}
	externals, err := a.config.ExternalVariables()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := a.loader.Load(ctx, a.config.ModelPath)
	a.metrics.RecordLoad(err, time.Since(start))
	if err != nil {
		a.flushMetrics()
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Debug("Model loaded.", "model", m.Name, "components", len(m.AllComponents()))
	if a.config.FlattenTo != "" {
		if err := a.writeFlattened(m); err != nil {
			return nil, err
		}
	}

	an, err := a.newAnalyser()
	if err != nil {
		return nil, err
	}
	for _, ev := range externals {
		if !an.AddExternalVariable(ev) {
			a.logger.Warn("External variable listed more than once.", "variable", ev.Ref().String())
		}
	}

	start = time.Now()
	res, err := an.Analyse(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to analyse model: %w", err)
	}
	a.metrics.RecordAnalysis(res, time.Since(start))

	rep := report.Build(m.Name, res)
	if err := report.Render(a.outW, rep, format); err != nil {
		return rep, fmt.Errorf("failed to write report: %w", err)
	}
	a.flushMetrics()

	a.logger.Info("Analysis finished.",
		"model", m.Name,
		"type", res.Type().String(),
		"variables", len(res.Variables()),
		"equations", len(res.Equations()),
		"issues", len(res.Issues()),
	)
	if !res.IsValid() {
		return rep, fmt.Errorf("%w: %s is %s with %d error(s)", ErrInvalidModel, m.Name, res.Type(), res.ErrorCount())
	}
	a.logger.Debug("App.Run method finished.")
	return rep, nil
}

func (a *App) newAnalyser() (*analyser.Analyser, error) {
	level, err := analyser.ParseLevel(a.config.UnitsStrictness)
	if err != nil {
		return nil, fmt.Errorf("invalid units strictness: %w", err)
	}
	return analyser.New(
		analyser.WithUnitsCheck(a.config.UnitsCheck),
		analyser.WithUnitsStrictness(level),
	), nil
}

// writeFlattened writes m to the FlattenTo file as a single HCL model.
func (a *App) writeFlattened(m *model.Model) error {
	f, err := os.Create(a.config.FlattenTo)
	if err != nil {
		return fmt.Errorf("failed to write flattened model: %w", err)
	}
	if err := hcl.Write(f, m); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write flattened model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write flattened model: %w", err)
	}
	a.logger.Debug("Flattened model written.", "path", a.config.FlattenTo)
	return nil
}

// flushMetrics writes the metrics file when one is configured. A failure is
// logged but never fails the run.
func (a *App) flushMetrics() {
	if a.config.MetricsFile == "" {
		return
	}
	if err := a.metrics.WriteToTextfile(a.config.MetricsFile); err != nil {
		a.logger.Warn("Failed to write metrics file.", "path", a.config.MetricsFile, "error", err)
		return
	}
	a.logger.Debug("Metrics written.", "path", a.config.MetricsFile)
}
