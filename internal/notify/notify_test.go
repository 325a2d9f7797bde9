package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infsectest/ist-detector/internal/session"
	"github.com/infsectest/ist-detector/pkg/logger"
)

func fullRequest() *session.Request {
	return &session.Request{
		UserID:       42,
		Username:     "Ivan Petrov",
		SocialNet:    "Вконтакте",
		ServiceLabel: "Мониторинг",
		Link:         "myhandle",
		Price:        4500,
		PlanLabel:    "Ежедневно за 4500 руб/мес",
		Phone:        "+79991234567",
		Email:        "ivan@example.com",
		Comment:      "срочно",
		PaymentLink:  "https://pay.example/1",
	}
}

func TestBuildFullReport(t *testing.T) {
	n := Build(fullRequest(), "bot@infsectest.ru")

	assert.Equal(t, "Новая заявка из Telegram-бота IST-detector", n.Subject)
	assert.Equal(t, "bot@infsectest.ru", n.From)
	assert.Contains(t, n.Body, "Пользователь: Ivan Petrov")
	assert.Contains(t, n.Body, "Telegram ID: 42")
	assert.Contains(t, n.Body, "Социальная сеть/объект: Вконтакте")
	assert.Contains(t, n.Body, "Ссылка или идентификатор: myhandle")
	assert.Contains(t, n.Body, "Услуга: Мониторинг")
	assert.Contains(t, n.Body, "Стоимость: 4 500 руб.")
	assert.Contains(t, n.Body, "Тариф: Ежедневно за 4500 руб/мес")
	assert.Contains(t, n.Body, "Телефон: +79991234567")
	assert.Contains(t, n.Body, "Email: ivan@example.com")
	assert.Contains(t, n.Body, "Комментарий:\nсрочно")
	assert.Contains(t, n.Body, "Ссылка для оплаты: https://pay.example/1")
}

func TestBuildOmitsSkippedFields(t *testing.T) {
	req := fullRequest()
	req.PlanLabel = ""
	req.Email = ""
	req.Comment = ""
	req.PaymentLink = ""

	n := Build(req, "bot@infsectest.ru")
	assert.NotContains(t, n.Body, "Тариф")
	assert.NotContains(t, n.Body, "Email:")
	assert.NotContains(t, n.Body, "Комментарий")
	assert.NotContains(t, n.Body, "Ссылка для оплаты")
}

func TestBuildAnonymousUser(t *testing.T) {
	req := fullRequest()
	req.Username = ""
	n := Build(req, "bot@infsectest.ru")
	assert.Contains(t, n.Body, "Пользователь: —")
}

type fakeMailer struct {
	err   error
	calls int
	last  []string
}

func (m *fakeMailer) Send(n Notification, recipients []string) error {
	m.calls++
	m.last = recipients
	return m.err
}

func TestDispatcherSuccess(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(mailer, []string{"a@x.com", "b@x.com"}, logger.NewDevelopment())
	defer d.Close()

	ok := <-d.Submit(Build(fullRequest(), "bot@infsectest.ru"))
	require.True(t, ok)
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, mailer.last)
}

func TestDispatcherMailerError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	d := NewDispatcher(mailer, []string{"a@x.com"}, logger.NewDevelopment())
	defer d.Close()

	ok := <-d.Submit(Notification{Subject: "s", From: "f", Body: "b"})
	assert.False(t, ok)
}

func TestDispatcherNoRecipients(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(mailer, nil, logger.NewDevelopment())
	defer d.Close()

	ok := <-d.Submit(Notification{Subject: "s", From: "f", Body: "b"})
	assert.False(t, ok)
	assert.Zero(t, mailer.calls)
}
