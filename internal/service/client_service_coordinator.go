// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/MKhiriev/gig-sync/internal/adapter"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/models"
)

const (
	defaultSyncInterval = 30 * time.Second
	defaultPullInterval = 5 * time.Minute
	defaultPassTimeout  = 2 * time.Minute
)

// CoordinatorConfig configures a SyncCoordinator.
type CoordinatorConfig struct {
	UserID   string
	Interval time.Duration
	// PullInterval is the minimum gap between pulls run by auto-sync. A tick
	// that finds it elapsed runs a full pull-then-push pass; the first tick
	// after Start always does.
	PullInterval time.Duration
	PassTimeout  time.Duration
	// Tables pulled by a manual sync that names none. Empty means all.
	Tables []models.TableName
}

type syncCoordinator struct {
	processor  QueueProcessor
	reconciler Reconciler
	probe      adapter.ConnectivityProbe
	clock      clock.Clock
	cfg        CoordinatorConfig
	logger     *logger.Logger

	mu       sync.Mutex
	syncing  bool
	lastSync *time.Time
	cancel   context.CancelFunc
	baseCtx  context.Context
	// stopping counts Stop calls waiting on wg; no pass is added meanwhile.
	stopping int
	wg       sync.WaitGroup
}

func NewSyncCoordinator(processor QueueProcessor, reconciler Reconciler, probe adapter.ConnectivityProbe, clk clock.Clock, cfg CoordinatorConfig, logger *logger.Logger) SyncCoordinator {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultSyncInterval
	}
	if cfg.PullInterval <= 0 {
		cfg.PullInterval = defaultPullInterval
	}
	if cfg.PassTimeout <= 0 {
		cfg.PassTimeout = defaultPassTimeout
	}
	return &syncCoordinator{
		processor:  processor,
		reconciler: reconciler,
		probe:      probe,
		clock:      clk,
		cfg:        cfg,
		logger:     logger,
	}
}

func (c *syncCoordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.baseCtx = ctx

	ticker := c.clock.Ticker(c.cfg.Interval)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer ticker.Stop()

		c.logger.Info().
			Dur("interval", c.cfg.Interval).
			Dur("pull_interval", c.cfg.PullInterval).
			Msg("auto-sync started")

		var lastPull time.Time
		for {
			select {
			case <-ctx.Done():
				c.logger.Info().Msg("auto-sync stopped")
				return
			case now := <-ticker.C:
				if lastPull.IsZero() || now.Sub(lastPull) >= c.cfg.PullInterval {
					if c.runSync(ctx) {
						lastPull = now
					}
					continue
				}
				c.runTick(ctx)
			}
		}
	}()
}

func (c *syncCoordinator) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.baseCtx = nil
	c.stopping++
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	c.mu.Lock()
	c.stopping--
	c.mu.Unlock()
}

// begin marks a pass as running. It fails when one already is.
func (c *syncCoordinator) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.syncing {
		return false
	}
	c.syncing = true
	return true
}

func (c *syncCoordinator) end(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.syncing = false
	if success {
		now := c.clock.Now().UTC()
		c.lastSync = &now
	}
}

func (c *syncCoordinator) Tick(ctx context.Context) (models.ProcessResult, error) {
	if !c.begin() {
		return models.ProcessResult{}, ErrSyncInProgress
	}

	ctx, cancel := c.clock.WithTimeout(ctx, c.cfg.PassTimeout)
	defer cancel()

	result, err := c.processor.ProcessQueue(ctx)
	c.end(err == nil)

	return result, err
}

func (c *syncCoordinator) TriggerSync(ctx context.Context, tables ...models.TableName) (models.SyncReport, error) {
	var report models.SyncReport

	if !c.begin() {
		return report, ErrSyncInProgress
	}

	ctx, cancel := c.clock.WithTimeout(ctx, c.cfg.PassTimeout)
	defer cancel()

	if c.probe != nil && !c.probe.IsOnline(ctx) {
		c.end(false)
		return report, ErrOffline
	}

	if len(tables) == 0 {
		tables = c.cfg.Tables
	}
	if len(tables) == 0 {
		tables = models.AllTables()
	}

	var errs []error
	for _, table := range tables {
		res, err := c.reconciler.Pull(ctx, models.PullRequest{Table: table, UserID: c.cfg.UserID})
		if err != nil {
			c.logger.Warn().Err(err).Str("table", table.String()).Msg("pull failed")
			errs = append(errs, err)
			continue
		}
		report.Pulls = append(report.Pulls, res)
	}

	push, err := c.processor.ProcessQueue(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	report.Push = push

	err = errors.Join(errs...)
	c.end(err == nil)

	return report, err
}

func (c *syncCoordinator) Status() models.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := models.SyncStatus{
		IsSyncing:         c.syncing,
		IsAutoSyncRunning: c.cancel != nil,
	}
	if c.lastSync != nil {
		t := *c.lastSync
		status.LastSyncTime = &t
	}
	return status
}

func (c *syncCoordinator) NotifyEnqueued() {
	c.mu.Lock()
	if c.stopping > 0 {
		c.mu.Unlock()
		c.logger.Debug().Msg("push pass refused, coordinator stopping")
		return
	}
	ctx := c.baseCtx
	c.wg.Add(1)
	c.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		defer c.wg.Done()
		c.runTick(ctx)
	}()
}

func (c *syncCoordinator) runTick(ctx context.Context) {
	result, err := c.Tick(ctx)
	switch {
	case errors.Is(err, ErrSyncInProgress), errors.Is(err, ErrPassInProgress), errors.Is(err, ErrOffline):
		c.logger.Debug().Err(err).Msg("push pass skipped")
	case err != nil:
		c.logger.Err(err).Msg("push pass failed")
	case result.Processed > 0 || result.Failed > 0:
		c.logger.Info().
			Int("processed", result.Processed).
			Int("failed", result.Failed).
			Int("remaining", result.Remaining).
			Msg("push pass finished")
	}
}

// runSync runs a pull-then-push pass over the configured tables. It reports
// whether the pass ran, so a skipped pull is retried on the next tick.
func (c *syncCoordinator) runSync(ctx context.Context) bool {
	report, err := c.TriggerSync(ctx)
	switch {
	case errors.Is(err, ErrSyncInProgress), errors.Is(err, ErrPassInProgress), errors.Is(err, ErrOffline):
		c.logger.Debug().Err(err).Msg("sync pass skipped")
		return false
	case err != nil:
		c.logger.Err(err).Msg("sync pass finished with errors")
	default:
		c.logger.Info().
			Int("tables", len(report.Pulls)).
			Int("processed", report.Push.Processed).
			Int("failed", report.Push.Failed).
			Msg("sync pass finished")
	}
	return true
}
