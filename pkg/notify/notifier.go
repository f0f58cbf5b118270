package notify

import (
	"context"
	"fmt"
	"log"
)

// Notifier — порт исходящих уведомлений. Отправка fire-and-forget:
// ошибки канала логируются вызывающей стороной и не прерывают основной поток.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// InterviewInvite формирует письмо о назначенном собеседовании.
func InterviewInvite(jobTitle, date, timeOfDay, meetingLink string) (subject, body string) {
	subject = fmt.Sprintf("Interview scheduled: %s", jobTitle)
	body = fmt.Sprintf("Your interview for %q is scheduled on %s at %s.", jobTitle, date, timeOfDay)
	if meetingLink != "" {
		body += fmt.Sprintf("\nMeeting link: %s", meetingLink)
	}
	return subject, body
}

// LogNotifier пишет уведомления в лог; используется, когда SMTP не настроен.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, recipient, subject, _ string) error {
	log.Printf("notify: to=%s subject=%q", recipient, subject)
	return nil
}
