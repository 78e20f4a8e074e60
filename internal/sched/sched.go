// Package sched runs edition generation on the configured cron schedule.
// Each firing produces a fresh draft; editions are insert-only, so an
// overlapping or repeated run is harmless.
package sched

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ecagle/herald/internal/config"
	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/intro"
	"github.com/ecagle/herald/internal/ops"
)

// Runner owns the cron instance and the pipeline dependencies.
type Runner struct {
	cron     *cron.Cron
	database *sql.DB
	cfg      *config.Config
	gen      *intro.Generator
}

// New validates the configured timezone and cron specs and registers the
// weekly and monthly jobs.
func New(database *sql.DB, cfg *config.Config, gen *intro.Generator) (*Runner, error) {
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	r := &Runner{
		cron:     cron.New(cron.WithLocation(loc)),
		database: database,
		cfg:      cfg,
		gen:      gen,
	}

	if _, err := r.cron.AddFunc(cfg.Schedule.Weekly, func() { r.run(content.EditionWeekly) }); err != nil {
		return nil, fmt.Errorf("invalid weekly cron spec %q: %w", cfg.Schedule.Weekly, err)
	}
	if _, err := r.cron.AddFunc(cfg.Schedule.Monthly, func() { r.run(content.EditionMonthly) }); err != nil {
		return nil, fmt.Errorf("invalid monthly cron spec %q: %w", cfg.Schedule.Monthly, err)
	}
	return r, nil
}

// Run starts the schedule and blocks until the context is cancelled, then
// waits for any in-flight job to finish.
func (r *Runner) Run(ctx context.Context) {
	log.Printf("[sched] schedule started (weekly %q, monthly %q, tz %s)",
		r.cfg.Schedule.Weekly, r.cfg.Schedule.Monthly, r.cfg.Schedule.Timezone)
	r.cron.Start()
	<-ctx.Done()
	<-r.cron.Stop().Done()
	log.Printf("[sched] schedule stopped")
}

// Entries exposes the registered cron entries.
func (r *Runner) Entries() []cron.Entry {
	return r.cron.Entries()
}

func (r *Runner) run(editionType content.EditionType) {
	out, err := ops.Generate(context.Background(), r.database, r.cfg, r.gen, ops.GenerateInput{
		EditionType: editionType,
	})
	if err != nil {
		log.Printf("[sched] %s generation failed: %v", editionType, err)
		return
	}
	if len(out.Degradations) > 0 {
		log.Printf("[sched] %s edition %s generated with degradations: %v", editionType, out.EditionID, out.Degradations)
		return
	}
	log.Printf("[sched] %s edition %s generated: %q", editionType, out.EditionID, out.Title)
}
