package backfill

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/service"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// Request represents a backfill invocation request.
type Request struct {
	SeasonYear int
	StartDate  *time.Time
	EndDate    *time.Time
	DryRun     bool
}

// DeriveType infers the job type based on populated fields.
func (r Request) DeriveType() (JobType, error) {
	if r.SeasonYear == 0 {
		return "", fmt.Errorf("season_year is required")
	}
	if r.StartDate != nil && r.EndDate != nil {
		return JobTypeDateRange, nil
	}
	if r.StartDate == nil && r.EndDate == nil {
		return JobTypeSeason, nil
	}
	return "", fmt.Errorf("start_date and end_date must be provided together")
}

// Service coordinates job persistence, execution, and status reporting.
type Service struct {
	repo        *Repository
	runner      *Runner
	leaderboard *service.LeaderboardService

	historyLimit int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch workers.
func NewService(db *store.Database, leaderboard *service.LeaderboardService, espnBaseURL string, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	var runner *Runner
	if strings.TrimSpace(espnBaseURL) != "" {
		runner = NewRunnerWithBaseURL(db, espnBaseURL)
	} else {
		runner = NewRunner(db)
	}

	if logger == nil {
		logger = log.New(log.Writer(), "[backfill] ", log.LstdFlags)
	}

	return &Service{
		repo:         NewRepository(db),
		runner:       runner,
		leaderboard:  leaderboard,
		historyLimit: 10,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	if err := s.repo.ResetStuckJobs(s.ctx); err != nil {
		s.logger.Printf("failed to reset jobs: %v", err)
	}

	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops workers and waits for completion.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(ctx context.Context, req Request) (*Job, error) {
	jobType, err := req.DeriveType()
	if err != nil {
		return nil, err
	}

	job := &Job{
		JobType:         jobType,
		SeasonYear:      req.SeasonYear,
		Status:          JobStatusQueued,
		StatusMessage:   sql.NullString{String: "Queued", Valid: true},
		ProgressCurrent: 0,
	}

	if jobType == JobTypeDateRange {
		job.StartDate = sql.NullTime{Time: truncateDate(*req.StartDate), Valid: true}
		job.EndDate = sql.NullTime{Time: truncateDate(*req.EndDate), Valid: true}
		job.ProgressTotal = len(enumerateDates(job.StartDate.Time, job.EndDate.Time))
	}

	stored, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}

	_ = s.repo.AppendEvent(ctx, stored.JobID, "queued", "Job queued", nil, nil)

	return stored, nil
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				s.logger.Printf("claim job error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	spec, err := s.buildSpec(job)
	if err != nil {
		s.logger.Printf("invalid job spec %s: %v", job.JobID, err)
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Invalid job specification", err)
		return
	}

	reporter := &jobReporter{
		ctx:   s.ctx,
		repo:  s.repo,
		jobID: job.JobID,
		total: len(enumerateDates(spec.Start, spec.End)),
	}

	if job.ProgressTotal == 0 {
		_ = s.repo.UpdateProgress(s.ctx, job.JobID, 0, reporter.total, "Starting job...")
	}

	if err := s.runner.Run(s.ctx, spec, reporter); err != nil {
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Job failed", err)
		return
	}

	// Backfilled snapshots change historical leaderboards for the season.
	if s.leaderboard != nil {
		if err := s.leaderboard.InvalidateSeason(s.ctx, job.SeasonYear); err != nil {
			s.logger.Printf("leaderboard invalidation after job %s: %v", job.JobID, err)
		}
	}

	_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, "Job completed", nil)
}

func (s *Service) buildSpec(job *Job) (JobSpec, error) {
	spec := JobSpec{
		Type:       job.JobType,
		SeasonYear: job.SeasonYear,
	}

	switch job.JobType {
	case JobTypeSeason:
		// Runner resolves the window from the seasons table.
	case JobTypeDateRange:
		if !job.StartDate.Valid || !job.EndDate.Valid {
			return spec, fmt.Errorf("job missing start/end dates")
		}
		spec.Start = job.StartDate.Time
		spec.End = job.EndDate.Time
	default:
		return spec, fmt.Errorf("unknown job type %s", job.JobType)
	}

	return spec, nil
}

type jobReporter struct {
	ctx   context.Context
	repo  *Repository
	jobID string
	total int
}

func (r *jobReporter) OnJobStart(spec JobSpec) {
	if r.total == 0 {
		r.total = len(enumerateDates(spec.Start, spec.End))
	}
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, 0, r.total, "Job starting")
}

func (r *jobReporter) OnDateStart(date time.Time, index int, total int) {
	msg := fmt.Sprintf("Processing %s (%d/%d)", date.Format("Jan 2, 2006"), index+1, total)
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, index, valueOr(total, r.total), msg)
}

func (r *jobReporter) OnDateComplete(date time.Time, teamCount int) {
	_ = r.repo.AppendEvent(r.ctx, r.jobID, "date",
		fmt.Sprintf("%s: %d team snapshots", date.Format("2006-01-02"), teamCount), nil, nil)
}

func (r *jobReporter) OnProgress(message string, current int, total int) {
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, current, valueOr(total, r.total), message)
}

func (r *jobReporter) OnJobComplete() {
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, r.total, r.total, "Job complete")
}

func (r *jobReporter) OnJobError(err error) {
	_ = r.repo.AppendEvent(r.ctx, r.jobID, "error", err.Error(), nil, nil)
}

func valueOr(val, fallback int) int {
	if val > 0 {
		return val
	}
	return fallback
}
