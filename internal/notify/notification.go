// Package notify formats operator notifications for completed intake
// requests and delivers them over SMTP.
package notify

import (
	"fmt"
	"strings"

	"github.com/infsectest/ist-detector/internal/payment"
	"github.com/infsectest/ist-detector/internal/session"
)

const subject = "Новая заявка из Telegram-бота IST-detector"

// Notification is a plain-text email ready for dispatch.
type Notification struct {
	Subject string
	From    string
	Body    string
}

// Build assembles the operator report. Optional fields the user skipped
// are left out entirely.
func Build(req *session.Request, from string) Notification {
	username := req.Username
	if username == "" {
		username = "—"
	}
	lines := []string{
		"Получена новая заявка из Telegram-бота IST-detector.",
		"",
		fmt.Sprintf("Пользователь: %s", username),
		fmt.Sprintf("Telegram ID: %d", req.UserID),
		fmt.Sprintf("Социальная сеть/объект: %s", req.SocialNet),
		fmt.Sprintf("Ссылка или идентификатор: %s", req.Link),
		fmt.Sprintf("Услуга: %s", req.ServiceLabel),
		fmt.Sprintf("Стоимость: %s руб.", payment.FormatPrice(req.Price)),
	}
	if req.PlanLabel != "" {
		lines = append(lines, fmt.Sprintf("Тариф: %s", req.PlanLabel))
	}
	lines = append(lines, fmt.Sprintf("Телефон: %s", req.Phone))
	if req.Email != "" {
		lines = append(lines, fmt.Sprintf("Email: %s", req.Email))
	}
	if req.Comment != "" {
		lines = append(lines, "Комментарий:", req.Comment)
	}
	if req.PaymentLink != "" {
		lines = append(lines, "", fmt.Sprintf("Ссылка для оплаты: %s", req.PaymentLink))
	}
	return Notification{
		Subject: subject,
		From:    from,
		Body:    strings.Join(lines, "\n"),
	}
}
