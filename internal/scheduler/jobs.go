package scheduler

import (
	"context"
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/sirupsen/logrus"
)

// UserLister lists every registered user
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// BillFinder resolves a user's expenses falling due within days of today
type BillFinder interface {
	UpcomingBillsFor(ctx context.Context, userID int64, days int) ([]models.UpcomingBill, error)
}

// ReminderSender delivers a bill reminder
type ReminderSender interface {
	SendBillReminder(to, username string, bills []models.UpcomingBill, currency string) error
}

// Jobs holds the work triggered by the scheduler
type Jobs struct {
	users     UserLister
	bills     BillFinder
	sender    ReminderSender
	logger    *logrus.Logger
	daysAhead int
	currency  string
	timeout   time.Duration
}

// NewJobs creates the job set
func NewJobs(users UserLister, bills BillFinder, sender ReminderSender, logger *logrus.Logger, daysAhead int, currency string) *Jobs {
	return &Jobs{
		users:     users,
		bills:     bills,
		sender:    sender,
		logger:    logger,
		daysAhead: daysAhead,
		currency:  currency,
		timeout:   5 * time.Minute,
	}
}

// SendBillReminders emails every user whose bills fall due within the reminder window.
// A failure for one user is logged and the run moves on.
func (j *Jobs) SendBillReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	j.logger.Info("Running bill reminder job")

	users, err := j.users.ListUsers(ctx)
	if err != nil {
		j.logger.WithError(err).Error("Bill reminder job: failed to list users")
		return
	}

	sent, failed := 0, 0
	for _, u := range users {
		log := j.logger.WithField("user_id", u.ID)
		bills, err := j.bills.UpcomingBillsFor(ctx, u.ID, j.daysAhead)
		if err != nil {
			log.WithError(err).Warn("Bill reminder job: failed to resolve bills")
			failed++
			continue
		}
		if len(bills) == 0 {
			continue
		}
		if err := j.sender.SendBillReminder(u.Email, u.Username, bills, j.currency); err != nil {
			log.WithError(err).Warn("Bill reminder job: failed to send reminder")
			failed++
			continue
		}
		sent++
	}

	j.logger.WithFields(logrus.Fields{
		"users":  len(users),
		"sent":   sent,
		"failed": failed,
	}).Info("Bill reminder job finished")
}
