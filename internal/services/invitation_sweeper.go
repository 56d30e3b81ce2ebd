package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type ExpiredInvitationDeleter interface {
	DeleteExpiredInvitations(ctx context.Context) (int64, error)
}

// InvitationSweeper periodically drops PENDING members whose invitation expired.
type InvitationSweeper struct {
	members ExpiredInvitationDeleter
	log     logrus.FieldLogger
	cron    *cron.Cron
	timeout time.Duration
}

func NewInvitationSweeper(members ExpiredInvitationDeleter, log logrus.FieldLogger) *InvitationSweeper {
	return &InvitationSweeper{
		members: members,
		log:     log,
		cron:    cron.New(),
		timeout: 30 * time.Second,
	}
}

// Start schedules the sweep. schedule is a standard cron spec or a descriptor like "@hourly".
func (s *InvitationSweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule invitation sweep: %w", err)
	}
	s.cron.Start()
	s.log.WithField("schedule", schedule).Info("invitation sweeper started")
	return nil
}

// Stop waits for a running sweep to finish.
func (s *InvitationSweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *InvitationSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.members.DeleteExpiredInvitations(ctx)
	if err != nil {
		s.log.WithError(err).Error("invitation sweep failed")
		return
	}
	if n > 0 {
		s.log.WithField("deleted", n).Info("removed expired invitations")
	}
}
