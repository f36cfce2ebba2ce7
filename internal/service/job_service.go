package service

import (
	"go.uber.org/zap"

	"carhire/internal/session"
)

// JobService holds the scheduled maintenance work wired to cron in main.
type JobService struct {
	Drafts *session.DraftStore
}

func NewJobService(drafts *session.DraftStore) *JobService {
	return &JobService{Drafts: drafts}
}

// PurgeExpiredDrafts evicts draft sessions that sat untouched past their TTL.
func (s *JobService) PurgeExpiredDrafts() {
	purged := s.Drafts.PurgeExpired()
	if purged > 0 {
		zap.S().Infow("purged expired booking drafts", "purged", purged, "remaining", s.Drafts.Len())
	}
}
