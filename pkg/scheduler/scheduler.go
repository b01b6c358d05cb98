package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"kanban-api/pkg/logger"
)

// JobScheduler รัน background job ตาม cron expression
type JobScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func(ctx context.Context)) error
	RemoveJob(id string) error
	RunNow(id string) error
	ListJobs() []JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID       string
	CronExpr string
	LastRun  *time.Time
	NextRun  time.Time
}

type jobEntry struct {
	cronExpr string
	job      *gocron.Job
	task     func(ctx context.Context)
	lastRun  *time.Time
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*jobEntry
	timeout   time.Duration
	mu        sync.RWMutex
	running   bool
}

// NewJobScheduler สร้าง scheduler (UTC) ที่ไม่ให้ job เดียวกันรันซ้อนกัน
// timeout คือเวลาสูงสุดของแต่ละรอบ
func NewJobScheduler(timeout time.Duration) JobScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &GocronScheduler{
		scheduler: s,
		jobs:      make(map[string]*jobEntry),
		timeout:   timeout,
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Info("Job scheduler started", "jobs", len(s.jobs))
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Info("Job scheduler stopped")
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	entry := &jobEntry{cronExpr: cronExpr, task: task}
	job, err := s.scheduler.Cron(cronExpr).Do(func() { s.execute(id, entry) })
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}
	entry.job = job
	s.jobs[id] = entry

	logger.Info("Job added", "job_id", id, "cron", cronExpr, "next_run", job.NextRun().Format(time.RFC3339))
	return nil
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.scheduler.RemoveByReference(entry.job)
	delete(s.jobs, id)
	logger.Info("Job removed", "job_id", id)
	return nil
}

// RunNow รัน job ทันทีใน goroutine ปัจจุบัน
func (s *GocronScheduler) RunNow(id string) error {
	s.mu.RLock()
	entry, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.execute(id, entry)
	return nil
}

func (s *GocronScheduler) ListJobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for id, entry := range s.jobs {
		info := JobInfo{ID: id, CronExpr: entry.cronExpr, NextRun: entry.job.NextRun()}
		if entry.lastRun != nil {
			lastRun := *entry.lastRun
			info.LastRun = &lastRun
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *GocronScheduler) execute(id string, entry *jobEntry) {
	now := time.Now()
	s.mu.Lock()
	entry.lastRun = &now
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job_id", id, "panic", r)
		}
	}()

	logger.Debug("Executing job", "job_id", id)
	entry.task(ctx)
}
