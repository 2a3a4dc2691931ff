package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTPSender from config.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendDealershipWentLiveEmail(ctx context.Context, toEmail, dealershipName string, monthlyValue float64) error {
	content, err := renderEmailTemplate(notificationEmailData{
		Title:   subjectDealershipWentLive,
		Heading: fmt.Sprintf("%s is now a live customer", dealershipName),
		Lines: []string{
			fmt.Sprintf("The account went live with a monthly value of $%.2f.", monthlyValue),
			"Check the dashboard for the updated pipeline.",
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectDealershipWentLive, content)
}

func (s *SMTPSender) SendImportCompletedEmail(ctx context.Context, toEmail string, created, skipped, failed int) error {
	content, err := renderEmailTemplate(notificationEmailData{
		Title:   subjectImportCompleted,
		Heading: "Your lead import has finished",
		Lines: []string{
			fmt.Sprintf("Created: %d", created),
			fmt.Sprintf("Skipped (duplicates or missing name): %d", skipped),
			fmt.Sprintf("Failed: %d", failed),
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectImportCompleted, content)
}

func (s *SMTPSender) SendTaskReminderEmail(ctx context.Context, toEmail, taskTitle, dueDate string) error {
	content, err := renderEmailTemplate(notificationEmailData{
		Title:   subjectTaskReminder,
		Heading: fmt.Sprintf("Reminder: %s", taskTitle),
		Lines: []string{
			fmt.Sprintf("This task is due %s.", dueDate),
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectTaskReminder, content)
}

var _ Sender = (*SMTPSender)(nil)
