package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/translator"
)

// ErrJobNotFound is returned for unknown job IDs.
var ErrJobNotFound = errors.New("job not found")

// HistoryRecorder persists finished conversions.
type HistoryRecorder interface {
	Record(ctx context.Context, jobID string, reports []models.ConversionReport) error
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Options configures the translators. Layout is chosen per job.
	Options translator.Options
	Sink    Sink
	Workers int
	History HistoryRecorder // optional
	Logger  *slog.Logger
}

type jobEntry struct {
	job         *models.ConversionJob
	done        chan struct{}
	subscribers []chan models.ConversionJob
}

// Manager runs conversion jobs asynchronously and tracks their progress.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*jobEntry
	runners map[bool]*Runner // keyed by layout mode
	history HistoryRecorder
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a job manager.
func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		jobs:    make(map[string]*jobEntry),
		runners: make(map[bool]*Runner, 2),
		history: cfg.History,
		logger:  componentLogger(cfg.Logger, "jobs"),
	}
	for _, layout := range []bool{false, true} {
		opts := cfg.Options
		opts.Layout = layout
		m.runners[layout] = NewRunner(translator.New(opts), cfg.Sink, RunnerConfig{
			Workers: cfg.Workers,
			Logger:  cfg.Logger,
		})
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m
}

// StartJob begins converting inputs in the background and returns a
// snapshot of the new job.
func (m *Manager) StartJob(inputs []Input, layout bool) models.ConversionJob {
	job := models.NewConversionJob(uuid.New().String(), len(inputs))
	job.Layout = layout
	for _, in := range inputs {
		job.Reports = append(job.Reports, models.ConversionReport{
			FileID: in.FileID,
			Input:  in.Name,
			Status: models.ConversionPending,
		})
	}
	entry := &jobEntry{job: job, done: make(chan struct{})}

	m.mu.Lock()
	m.jobs[job.ID] = entry
	snapshot := snapshotJob(job)
	m.mu.Unlock()

	m.wg.Add(1)
	go m.processJob(entry, inputs)

	return snapshot
}

// GetJob returns a snapshot of a job.
func (m *Manager) GetJob(id string) (models.ConversionJob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.jobs[id]
	if !ok {
		return models.ConversionJob{}, false
	}
	return snapshotJob(entry.job), true
}

// Wait blocks until the job finishes or ctx ends.
func (m *Manager) Wait(ctx context.Context, id string) (models.ConversionJob, error) {
	m.mu.RLock()
	entry, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return models.ConversionJob{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	select {
	case <-entry.done:
	case <-ctx.Done():
		return models.ConversionJob{}, ctx.Err()
	}
	job, _ := m.GetJob(id)
	return job, nil
}

// Subscribe returns a channel receiving a snapshot after every finished
// file and once more when the job ends, after which it is closed. Slow
// readers miss intermediate updates. Call cancel to stop early.
func (m *Manager) Subscribe(id string) (<-chan models.ConversionJob, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.jobs[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	ch := make(chan models.ConversionJob, 16)
	if entry.job.Finished() {
		ch <- snapshotJob(entry.job)
		close(ch)
		return ch, func() {}, nil
	}
	entry.subscribers = append(entry.subscribers, ch)

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if i := slices.Index(entry.subscribers, ch); i >= 0 {
			entry.subscribers = slices.Delete(entry.subscribers, i, i+1)
			close(ch)
		}
	}
	return ch, cancel, nil
}

// processJob handles the actual async processing.
func (m *Manager) processJob(entry *jobEntry, inputs []Input) {
	defer m.wg.Done()
	defer close(entry.done)

	job := entry.job
	if logEnabled(m.logger, slog.LevelInfo) {
		m.logger.LogAttrs(m.ctx, slog.LevelInfo, "job started",
			slog.String("job", job.ID),
			slog.Int("files", len(inputs)),
			slog.Bool("layout", job.Layout))
	}

	m.mu.Lock()
	job.Status = models.JobStatusRunning
	m.mu.Unlock()

	runner := m.runners[job.Layout].withReportHook(func(i int, report models.ConversionReport) {
		m.mu.Lock()
		defer m.mu.Unlock()
		job.Reports[i] = report
		job.Done++
		if job.Total > 0 {
			job.Progress = float64(job.Done) / float64(job.Total) * 100
		}
		m.notifyLocked(entry, false)
	})

	reports, err := runner.Run(m.ctx, inputs)
	if err != nil {
		m.markJobError(entry, fmt.Sprintf("conversion interrupted: %v", err))
		return
	}

	if m.history != nil {
		if err := m.history.Record(m.ctx, job.ID, reports); err != nil && logEnabled(m.logger, slog.LevelWarn) {
			m.logger.LogAttrs(m.ctx, slog.LevelWarn, "recording history failed",
				slog.String("job", job.ID),
				slog.String("error", err.Error()))
		}
	}

	m.markJobComplete(entry)
}

// markJobComplete marks job as complete (thread-safe).
func (m *Manager) markJobComplete(entry *jobEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.job.Status = models.JobStatusComplete
	entry.job.Progress = 100
	now := time.Now()
	entry.job.CompletedAt = &now
	m.notifyLocked(entry, true)

	if logEnabled(m.logger, slog.LevelInfo) {
		m.logger.LogAttrs(m.ctx, slog.LevelInfo, "job complete", slog.String("job", entry.job.ID))
	}
}

// markJobError marks job as failed (thread-safe).
func (m *Manager) markJobError(entry *jobEntry, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.job.Status = models.JobStatusError
	entry.job.Error = errMsg
	now := time.Now()
	entry.job.CompletedAt = &now
	m.notifyLocked(entry, true)

	if logEnabled(m.logger, slog.LevelWarn) {
		m.logger.LogAttrs(context.Background(), slog.LevelWarn, "job failed",
			slog.String("job", entry.job.ID),
			slog.String("error", errMsg))
	}
}

func (m *Manager) notifyLocked(entry *jobEntry, final bool) {
	snapshot := snapshotJob(entry.job)
	for _, ch := range entry.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
		if final {
			close(ch)
		}
	}
	if final {
		entry.subscribers = nil
	}
}

// CleanupOldJobs removes finished jobs older than maxAge.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, entry := range m.jobs {
		if entry.job.Finished() && entry.job.CompletedAt != nil && entry.job.CompletedAt.Before(cutoff) {
			delete(m.jobs, id)
		}
	}
}

// Close stops running jobs and waits for them to finish.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

func snapshotJob(job *models.ConversionJob) models.ConversionJob {
	s := *job
	s.Reports = slices.Clone(job.Reports)
	return s
}
