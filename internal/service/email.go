package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/monitor"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendPassStatusNotification(ctx context.Context, email, name string, pass *domain.GatePass, comment string) error {
	subject := fmt.Sprintf("Gate pass update: %s", pass.Status)
	body := fmt.Sprintf("Hello %s,\n\nYour %s gate pass (departing %s) is now %s.",
		name, pass.Type, pass.DepartureDate.Format("2006-01-02 15:04"), pass.Status)
	if comment != "" {
		body += fmt.Sprintf("\n\nApprover comment: %s", comment)
	}
	body += "\n\nCampus Gate Office"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendApprovalRequestNotification(ctx context.Context, email, approverName, studentName string, pass *domain.GatePass) error {
	subject := "Gate pass awaiting your approval"
	body := fmt.Sprintf("Hello %s,\n\n%s has requested a %s gate pass departing %s.\nReason: %s\n\nPlease review it in your queue.\n\nCampus Gate Office",
		approverName, studentName, pass.Type, pass.DepartureDate.Format("2006-01-02 15:04"), pass.Reason)
	return s.send(email, approverName, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, wardenName string, overdue []monitor.LiveEntry) error {
	subject := fmt.Sprintf("%d students overdue at the gate", len(overdue))

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThe following students are past their expected return time:\n\n", wardenName)
	for _, e := range overdue {
		fmt.Fprintf(&b, "  - student %s, pass %s, overdue by %d minutes\n",
			e.Pass.StudentID, e.Pass.ID, e.OverdueByMinutes)
	}
	b.WriteString("\nCampus Gate Office")
	return s.send(email, wardenName, subject, b.String())
}
