package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"task-assistant/config"
	"task-assistant/internal/contract"
	"task-assistant/internal/model"
	"task-assistant/internal/repository"
	"task-assistant/pkg/logger"
	"task-assistant/pkg/utils"
)

const lockRetryAttempts = 3

type SchedulerStatus struct {
	Running       bool      `json:"running"`
	LastTickAt    time.Time `json:"last_tick_at"`
	LastOverdueAt time.Time `json:"last_overdue_at"`
}

type SchedulerService interface {
	// Start launches the background worker. Calling Start while running is
	// a no-op that logs a warning.
	Start(ctx context.Context)
	// Stop signals the worker and waits for it up to the configured stop
	// timeout; shutdown proceeds either way.
	Stop()
	// RunTick executes one duty cycle on the caller's goroutine. Exposed
	// for the manual HTTP trigger.
	RunTick(ctx context.Context)
	SendDailySummary(ctx context.Context, userID uint) error
	Status() SchedulerStatus
}

type schedulerService struct {
	cfg        *config.Config
	log        *logger.Logger
	repo       *repository.Repository
	dispatcher Dispatcher
	executor   contract.ScriptExecutor
	renderer   *renderer
	gate       *OverdueGate
	cronParser cron.Parser

	mu            sync.Mutex
	running       bool
	cancel        context.CancelFunc
	done          chan struct{}
	lastTick      time.Time
	lastOverdue   time.Time
	now           func() time.Time
	retryBackoff  time.Duration
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	dispatcher Dispatcher,
	executor contract.ScriptExecutor,
	renderer *renderer,
	gate *OverdueGate,
) *schedulerService {
	return &schedulerService{
		cfg:          cfg,
		log:          log,
		repo:         repo,
		dispatcher:   dispatcher,
		executor:     executor,
		renderer:     renderer,
		gate:         gate,
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		now:          func() time.Time { return time.Now().UTC() },
		retryBackoff: 2 * time.Second,
	}
}

func (s *schedulerService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("Scheduler is already running")
		return
	}

	workerCtx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.runLoop(workerCtx, s.done)
	s.log.Info("Scheduler started", logger.DurationField("tick_interval", s.cfg.Scheduler.TickInterval))
}

func (s *schedulerService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	select {
	case <-done:
		s.log.Info("Scheduler stopped")
	case <-time.After(s.cfg.Scheduler.StopTimeout):
		s.log.Warn("Timeout waiting for scheduler worker, proceeding with shutdown")
	}
}

func (s *schedulerService) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SchedulerStatus{
		Running:       s.running,
		LastTickAt:    s.lastTick,
		LastOverdueAt: s.lastOverdue,
	}
}

func (s *schedulerService) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContextWithAlert(ctx, "Scheduler worker panicked", logger.Field("panic", r))
		}
	}()

	ticker := time.NewTicker(s.cfg.Scheduler.TickInterval)
	defer ticker.Stop()

	s.RunTick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunTick(ctx)
		}
	}
}

// RunTick runs the three passes in order. A failure in one pass never aborts
// the remaining passes.
func (s *schedulerService) RunTick(ctx context.Context) {
	now := s.now()
	s.mu.Lock()
	s.lastTick = now
	overdueDue := now.Sub(s.lastOverdue) >= s.cfg.Scheduler.OverdueInterval
	s.mu.Unlock()

	if err := s.runPass(ctx, "task_reminders", s.taskReminderPass); err != nil {
		s.log.ErrorContext(ctx, "Task reminder pass failed", logger.ErrorField(err))
	}

	if err := s.runPass(ctx, "assistant_runs", s.assistantPass); err != nil {
		s.log.ErrorContext(ctx, "Assistant pass failed", logger.ErrorField(err))
	}

	if overdueDue {
		if err := s.runPass(ctx, "overdue_sweep", s.overduePass); err != nil {
			s.log.ErrorContext(ctx, "Overdue pass failed", logger.ErrorField(err))
		} else {
			s.mu.Lock()
			s.lastOverdue = now
			s.mu.Unlock()
		}
	}
}

// runPass executes one pass in a transaction, retrying on storage contention
// with 2s/4s/6s backoff and rolling back between attempts. Panics inside a
// pass are converted to errors so the loop survives.
func (s *schedulerService) runPass(ctx context.Context, name string, pass func(ctx context.Context, opts ...utils.DBOption) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = utils.RunSafe(func() error {
			return s.repo.UnitOfWork.Run(func(opts ...utils.DBOption) error {
				return pass(ctx, opts...)
			})
		})
		if err == nil || !repository.IsBusy(err) || attempt >= lockRetryAttempts {
			break
		}

		backoff := time.Duration(attempt+1) * s.retryBackoff
		s.log.WarnContext(ctx, "Storage busy, retrying pass",
			logger.StringField("pass", name),
			logger.IntField("attempt", attempt+1),
			logger.DurationField("backoff", backoff),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	if err != nil {
		return fmt.Errorf("%s pass: %w", name, err)
	}
	return nil
}

func (s *schedulerService) taskReminderPass(ctx context.Context, opts ...utils.DBOption) error {
	now := s.now()
	windowStart := now.Add(-s.cfg.Scheduler.ReminderLookback)
	windowEnd := now.Add(s.cfg.Scheduler.ReminderLookahead)

	tasks, err := s.repo.TaskRepo.FindDueForReminder(ctx, windowStart, windowEnd, opts...)
	if err != nil {
		return fmt.Errorf("find due tasks: %w", err)
	}

	for i := range tasks {
		if !utils.ShouldContinue(ctx, s.log) {
			return nil
		}
		task := &tasks[i]
		user := &task.User
		if user.ID == 0 {
			s.log.WarnContext(ctx, "Task owner missing, skipping reminder", logger.IntField("task_id", int(task.ID)))
			continue
		}

		msg := s.renderer.taskReminder(user, task)
		results := s.dispatcher.Dispatch(ctx, user, msg, Ref{TaskID: &task.ID}, assistantChannelFilter(task.Assistant), opts...)

		if AnySuccess(results) {
			if err := s.repo.TaskRepo.MarkNotifySent(ctx, task.ID, opts...); err != nil {
				return fmt.Errorf("mark notify_sent for task %d: %w", task.ID, err)
			}
			s.log.InfoContext(ctx, "Task reminder sent",
				logger.IntField("task_id", int(task.ID)),
				logger.IntField("user_id", int(user.ID)),
			)
		} else if len(results) > 0 {
			// All channels failed: notify_sent stays false so a later tick
			// retries while the task remains inside the window.
			s.log.WarnContext(ctx, "All channels failed for task reminder",
				logger.IntField("task_id", int(task.ID)),
			)
		}
	}

	return nil
}

func (s *schedulerService) assistantPass(ctx context.Context, opts ...utils.DBOption) error {
	now := s.now()

	assistants, err := s.repo.AssistantRepo.FindDueForRun(ctx, now, opts...)
	if err != nil {
		return fmt.Errorf("find due assistants: %w", err)
	}

	for i := range assistants {
		if !utils.ShouldContinue(ctx, s.log) {
			return nil
		}
		assistant := &assistants[i]

		for j := range assistant.Scripts {
			s.runAssistantScript(ctx, assistant, &assistant.Scripts[j], opts...)
		}

		if err := s.reschedule(ctx, assistant, now, opts...); err != nil {
			s.log.ErrorContext(ctx, "Failed to reschedule assistant",
				logger.ErrorField(err),
				logger.IntField("assistant_id", int(assistant.ID)),
			)
		}
	}

	return nil
}

func (s *schedulerService) runAssistantScript(ctx context.Context, assistant *model.Assistant, script *model.Script, opts ...utils.DBOption) {
	execCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.ScriptTimeout)
	defer cancel()

	result, err := s.executor.Execute(execCtx, script)
	if err != nil {
		result = &contract.ExecutionResult{
			Success:   false,
			Output:    err.Error(),
			StartedAt: s.now(),
			EndedAt:   s.now(),
		}
	}

	state := model.ExecutionStateSuccess
	var execErr sql.NullString
	if !result.Success {
		state = model.ExecutionStateFailed
		execErr = sql.NullString{String: result.Output, Valid: true}
	}

	execution := &model.ScriptExecution{
		ScriptID:    script.ID,
		UserID:      assistant.UserID,
		State:       state,
		Output:      result.Output,
		Error:       execErr,
		StartedAt:   result.StartedAt,
		CompletedAt: sql.NullTime{Time: result.EndedAt, Valid: true},
	}
	if err := s.repo.ScriptRepo.CreateExecution(ctx, execution, opts...); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist script execution",
			logger.ErrorField(err),
			logger.IntField("script_id", int(script.ID)),
		)
	}

	if assistant.NotifyTelegram {
		msg := s.renderer.scriptResult(&assistant.User, assistant, script, result)
		s.dispatcher.Dispatch(ctx, &assistant.User, msg, Ref{AssistantID: &assistant.ID}, assistantChannelFilter(assistant), opts...)
	}
}

// reschedule updates an assistant's next run after its scripts completed.
// The baseline is the processing time, not the stored next_run_time, so a
// delayed tick shifts the cadence forward rather than compressing it.
func (s *schedulerService) reschedule(ctx context.Context, assistant *model.Assistant, now time.Time, opts ...utils.DBOption) error {
	if assistant.CronExpr.Valid && assistant.CronExpr.String != "" {
		schedule, err := s.cronParser.Parse(assistant.CronExpr.String)
		if err != nil {
			return fmt.Errorf("parse cron expression %q: %w", assistant.CronExpr.String, err)
		}
		next := sql.NullTime{Time: schedule.Next(now), Valid: true}
		return s.repo.AssistantRepo.UpdateSchedule(ctx, assistant.ID, assistant.RunEvery, next, now, opts...)
	}

	if assistant.RunEvery.Valid && assistant.RunEvery.String == model.RunEveryOnce {
		// A one-shot assistant clears itself so it never fires again.
		return s.repo.AssistantRepo.UpdateSchedule(ctx, assistant.ID, sql.NullString{}, sql.NullTime{}, now, opts...)
	}

	next := sql.NullTime{Time: NextRunTime(assistant.RunEvery.String, now), Valid: true}
	return s.repo.AssistantRepo.UpdateSchedule(ctx, assistant.ID, assistant.RunEvery, next, now, opts...)
}

func (s *schedulerService) overduePass(ctx context.Context, opts ...utils.DBOption) error {
	now := s.now()

	tasks, err := s.repo.TaskRepo.FindOverdue(ctx, now, opts...)
	if err != nil {
		return fmt.Errorf("find overdue tasks: %w", err)
	}

	byUser := make(map[uint][]model.Task)
	order := make([]uint, 0)
	for _, task := range tasks {
		if _, seen := byUser[task.UserID]; !seen {
			order = append(order, task.UserID)
		}
		byUser[task.UserID] = append(byUser[task.UserID], task)
	}

	bucket := utils.HourBucket(now)
	for _, userID := range order {
		if !utils.ShouldContinue(ctx, s.log) {
			return nil
		}
		group := byUser[userID]
		user := &group[0].User
		if user.ID == 0 {
			continue
		}

		if !s.gate.Allowed(userID, bucket) {
			continue
		}

		msg := s.renderer.overdueDigest(user, group)
		results := s.dispatcher.Dispatch(ctx, user, msg, Ref{}, nil, opts...)

		// The bucket is recorded only on success so a fully failed digest
		// is retried at the next sweep.
		if AnySuccess(results) {
			s.gate.Record(userID, bucket)
			s.log.InfoContext(ctx, "Overdue digest sent",
				logger.IntField("user_id", int(userID)),
				logger.IntField("task_count", len(group)),
			)
		}
	}

	return nil
}

// SendDailySummary renders and dispatches the user's tasks for the current
// day in their timezone. Reused by the manual HTTP trigger.
func (s *schedulerService) SendDailySummary(ctx context.Context, userID uint) error {
	user, err := s.repo.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user %d: %w", userID, err)
	}
	if user == nil {
		return fmt.Errorf("user %d not found", userID)
	}

	localNow := utils.InZone(s.now(), user.Timezone, s.cfg.App.DefaultTimezone)
	dayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, localNow.Location())
	from := dayStart.UTC()
	to := dayStart.Add(24 * time.Hour).UTC()

	tasks, err := s.repo.TaskRepo.FindActiveForUserBetween(ctx, userID, from, to)
	if err != nil {
		return fmt.Errorf("find tasks for summary: %w", err)
	}

	msg := s.renderer.dailySummary(user, tasks)
	results := s.dispatcher.Dispatch(ctx, user, msg, Ref{}, nil)
	if len(results) > 0 && !AnySuccess(results) {
		return fmt.Errorf("daily summary for user %d failed on every channel", userID)
	}
	return nil
}

// assistantChannelFilter narrows a dispatch to the channels the assistant
// allows. WhatsApp has no assistant-level toggle and follows the user's own
// setting. A nil assistant means no narrowing.
func assistantChannelFilter(assistant *model.Assistant) ChannelFilter {
	if assistant == nil {
		return nil
	}
	return func(channelName string) bool {
		switch channelName {
		case model.ChannelTelegram:
			return assistant.NotifyTelegram
		case model.ChannelEmail:
			return assistant.NotifyEmail
		default:
			return true
		}
	}
}
