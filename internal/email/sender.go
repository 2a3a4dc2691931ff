// Package email sends CRM notification emails over SMTP.
package email

import (
	"context"
)

// Sender delivers the notification emails the CRM produces.
type Sender interface {
	SendDealershipWentLiveEmail(ctx context.Context, toEmail, dealershipName string, monthlyValue float64) error
	SendImportCompletedEmail(ctx context.Context, toEmail string, created, skipped, failed int) error
	SendTaskReminderEmail(ctx context.Context, toEmail, taskTitle, dueDate string) error
}

// NoopSender drops all mail. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendDealershipWentLiveEmail(ctx context.Context, toEmail, dealershipName string, monthlyValue float64) error {
	return nil
}

func (NoopSender) SendImportCompletedEmail(ctx context.Context, toEmail string, created, skipped, failed int) error {
	return nil
}

func (NoopSender) SendTaskReminderEmail(ctx context.Context, toEmail, taskTitle, dueDate string) error {
	return nil
}

var _ Sender = NoopSender{}
