package processor

import (
	"context"

	"github.com/robfig/cron/v3"

	"flexreviews/internal/app/reviews/service"
	"flexreviews/pkg/logger"
)

// SyncScheduler запускает периодическую синхронизацию отзывов из Hostaway
type SyncScheduler struct {
	cron      *cron.Cron
	reviewSvc service.ReviewServiceInterface
}

func NewSyncScheduler(reviewSvc service.ReviewServiceInterface) *SyncScheduler {
	return &SyncScheduler{
		cron:      cron.New(),
		reviewSvc: reviewSvc,
	}
}

// Start регистрирует задачу по расписанию и сразу выполняет первый прогон
func (s *SyncScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting review sync scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.runSync(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	logger.Info().Msg("Performing initial review sync")
	s.runSync(ctx)

	return nil
}

func (s *SyncScheduler) runSync(ctx context.Context) {
	resp, err := s.reviewSvc.SyncFromChannel(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Scheduled review sync failed")
		return
	}

	logger.Info().
		Int("inserted", resp.Inserted).
		Int("updated", resp.Updated).
		Str("source", resp.Source).
		Msg("Scheduled review sync completed")
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *SyncScheduler) Stop() {
	logger.Info().Msg("Stopping review sync scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Review sync scheduler stopped")
}

func (s *SyncScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
