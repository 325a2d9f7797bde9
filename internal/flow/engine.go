package flow

import (
	"fmt"
	"strings"

	"github.com/infsectest/ist-detector/internal/catalog"
	"github.com/infsectest/ist-detector/internal/payment"
	"github.com/infsectest/ist-detector/internal/session"
	"github.com/infsectest/ist-detector/pkg/logger"
)

// Notifier delivers the operator report for a confirmed request and
// reports whether delivery succeeded.
type Notifier interface {
	Notify(req *session.Request) bool
}

// Engine drives the intake conversation: it validates each answer,
// fills the request draft one field at a time and advances the state.
type Engine struct {
	sessions      *session.Store
	payments      *payment.Robokassa
	notifier      Notifier
	greetingImage string
	log           *logger.Logger
}

func NewEngine(sessions *session.Store, payments *payment.Robokassa, notifier Notifier, greetingImage string, log *logger.Logger) *Engine {
	return &Engine{
		sessions:      sessions,
		payments:      payments,
		notifier:      notifier,
		greetingImage: greetingImage,
		log:           log,
	}
}

// stepFunc handles one event for the state it is registered under and
// returns the outbound replies. State advancement happens inside the
// handler, only after its validation passed.
type stepFunc func(*Engine, *session.Request, Event) []Reply

// steps is the transition table: current state to handler.
var steps = map[session.State]stepFunc{
	session.StateSocialNet:    stepSocialNet,
	session.StateService:      stepService,
	session.StateLink:         stepLink,
	session.StatePlan:         stepPlan,
	session.StatePhone:        stepPhone,
	session.StateEmail:        stepEmail,
	session.StateComment:      stepComment,
	session.StateConfirmation: stepConfirmation,
}

// Handle processes one inbound event. Commands short-circuit the flow
// regardless of the current state.
func (e *Engine) Handle(ev Event) []Reply {
	if ev.Command != "" {
		return e.handleCommand(ev)
	}

	req := e.sessions.Get(ev.UserID)
	if req == nil {
		return []Reply{{Text: "Пожалуйста, используйте /start для начала работы с ботом."}}
	}

	step, ok := steps[req.State]
	if !ok {
		e.log.Warnw("request in unknown state, resetting", "user_id", ev.UserID, "state", req.State)
		e.sessions.Clear(ev.UserID)
		return []Reply{{Text: "Произошла ошибка. Пожалуйста, используйте /start для начала заново.", Keyboard: removeKeyboard()}}
	}
	return step(e, req, ev)
}

func (e *Engine) handleCommand(ev Event) []Reply {
	switch ev.Command {
	case "start":
		e.sessions.Start(ev.UserID, ev.Username)
		greeting := Reply{
			Text: fmt.Sprintf("Здравствуйте, %s 👋\n\n📱 IST-detector поможет решить вопросы в сфере защиты данных. "+
				"Я могу провести тестирование Ваших аккаунтов на возможность взлома.", ev.Username),
			PhotoPath: e.greetingImage,
		}
		return []Reply{greeting, {
			Text:     "С какой из систем будем работать?",
			Keyboard: socialNetworkKeyboard(),
		}}
	case "help":
		return []Reply{{Text: "Я помогу оформить заявку на проверку безопасности аккаунтов. " +
			"Используйте /start, чтобы начать заново, /services, чтобы увидеть список услуг, и /cancel, чтобы прервать диалог."}}
	case "services":
		lines := make([]string, 0, len(catalog.ServiceOptions))
		for _, s := range catalog.ServiceOptions {
			lines = append(lines, "• "+s.Label)
		}
		return []Reply{{
			Text:     "Доступные услуги:\n" + strings.Join(lines, "\n"),
			Keyboard: serviceKeyboard(),
		}}
	case "cancel":
		e.sessions.Clear(ev.UserID)
		return []Reply{{
			Text:     "Диалог прерван. Чтобы начать заново, используйте /start.",
			Keyboard: removeKeyboard(),
		}}
	default:
		return []Reply{{Text: "Неизвестная команда. Используйте /start для начала работы."}}
	}
}

func stepSocialNet(e *Engine, req *session.Request, ev Event) []Reply {
	network := catalog.ResolveSocialNetwork(ev.Text)
	if network == nil {
		return []Reply{{Text: "Выберите объект из предложенных в клавиатуре."}}
	}
	req.SocialNet = network.Label
	req.State = session.StateService

	pitch := fmt.Sprintf("Проверьте свой аккаунт %s на попытки взлома 🔓\n\n"+
		"Узнайте, кто хотел получить доступ к Вашим сообщениям, фотографиям и спискам друзей 🔎\n\n"+
		"Получите информацию о рисках утечки данных и включите мониторинг, чтобы мы могли предупреждать Вас об инцидентах.",
		network.Label)
	if strings.HasPrefix(network.Code, "web") {
		pitch = "Проверьте свой сайт на попытки взлома 🔓\n\n" +
			"Получите исчерпывающую информацию о рисках утечки данных и настройте мониторинг безопасности."
	}
	return []Reply{{Text: pitch, Keyboard: serviceKeyboard()}}
}

func stepService(e *Engine, req *session.Request, ev Event) []Reply {
	service := catalog.ResolveServiceOption(ev.Text)
	if service == nil {
		return []Reply{{Text: "Выберите услугу из предложенных в клавиатуре."}}
	}
	req.ServiceCode = service.Code
	req.ServiceLabel = service.Label
	req.State = session.StateLink
	return []Reply{
		{Text: service.Description, Keyboard: removeKeyboard()},
		{Text: "Укажите Ваш аккаунт (ссылку на него, ID, логин) 👤"},
	}
}

func stepLink(e *Engine, req *session.Request, ev Event) []Reply {
	link := strings.TrimSpace(ev.Text)
	if link == "" {
		return []Reply{{Text: "Укажите Ваш аккаунт (ссылку на него, ID, логин) 👤"}}
	}
	req.Link = link

	service := catalog.ServiceByCode(req.ServiceCode)
	if service.RequiresPlan() {
		req.State = session.StatePlan
		return []Reply{{
			Text:     "Выберите периодичность мониторинга:",
			Keyboard: planKeyboard(service.Plans),
		}}
	}
	return askPhone(req, service, service.Price, nil)
}

// askPhone records the final price (and plan, when one was chosen) and
// moves the conversation to the phone step.
func askPhone(req *session.Request, service *catalog.ServiceOption, price int, plan *catalog.SubscriptionPlan) []Reply {
	req.Price = price
	var replies []Reply
	if plan != nil {
		req.PlanLabel = plan.Label
		replies = append(replies, Reply{Text: fmt.Sprintf("Выбран тариф: %s\n%s", plan.Label, plan.Description)})
	}
	replies = append(replies,
		Reply{Text: fmt.Sprintf("Стоимость услуги: %s руб.", payment.FormatPrice(price))},
		Reply{Text: service.PaymentHint},
		Reply{Text: service.PhonePrompt, Keyboard: removeKeyboard()},
	)
	req.State = session.StatePhone
	return replies
}

func stepPlan(e *Engine, req *session.Request, ev Event) []Reply {
	service := catalog.ServiceByCode(req.ServiceCode)
	planCode, ok := strings.CutPrefix(ev.Callback, "plan:")
	if !ok {
		return []Reply{{
			Text:     "Выберите периодичность мониторинга:",
			Keyboard: planKeyboard(service.Plans),
		}}
	}
	plan := catalog.FindPlan(service, planCode)
	if plan == nil {
		return []Reply{{Text: "Не удалось определить тариф. Пожалуйста, выберите вариант из списка."}}
	}
	return askPhone(req, service, plan.Price, plan)
}

func stepPhone(e *Engine, req *session.Request, ev Event) []Reply {
	phone, ok := normalizePhone(ev.Text)
	if !ok {
		return []Reply{{Text: "Неверный формат номера ⚠. Пожалуйста, отправьте номер цифрами."}}
	}
	req.Phone = phone
	req.State = session.StateEmail
	return []Reply{{
		Text:     "Оставьте e-mail для связи (или отправьте 'Пропустить').",
		Keyboard: skipKeyboard(),
	}}
}

func stepEmail(e *Engine, req *session.Request, ev Event) []Reply {
	text := strings.TrimSpace(ev.Text)
	switch {
	case isSkip(text):
		req.Email = ""
	case isValidEmail(text):
		req.Email = text
	default:
		return []Reply{{Text: "Похоже, адрес некорректен. Попробуйте снова или отправьте 'Пропустить'."}}
	}
	req.State = session.StateComment
	return []Reply{{
		Text:     "Если есть дополнительные сведения, напишите их (или отправьте 'Пропустить').",
		Keyboard: skipKeyboard(),
	}}
}

func stepComment(e *Engine, req *session.Request, ev Event) []Reply {
	text := strings.TrimSpace(ev.Text)
	if isSkip(text) {
		req.Comment = ""
	} else {
		req.Comment = text
	}
	req.State = session.StateConfirmation
	return []Reply{{Text: summary(req), Keyboard: confirmationKeyboard()}}
}

func summary(req *session.Request) string {
	lines := []string{
		"Проверьте, пожалуйста, данные заявки:",
		fmt.Sprintf("• Социальная сеть: %s", req.SocialNet),
		fmt.Sprintf("• Ссылка/логин: %s", req.Link),
		fmt.Sprintf("• Услуга: %s", req.ServiceLabel),
	}
	if req.PlanLabel != "" {
		lines = append(lines, fmt.Sprintf("• Тариф: %s", req.PlanLabel))
	}
	lines = append(lines,
		fmt.Sprintf("• Стоимость: %s руб.", payment.FormatPrice(req.Price)),
		fmt.Sprintf("• Телефон: %s", req.Phone),
	)
	if req.Email != "" {
		lines = append(lines, fmt.Sprintf("• Email: %s", req.Email))
	}
	if req.Comment != "" {
		lines = append(lines, fmt.Sprintf("• Комментарий: %s", req.Comment))
	}
	return strings.Join(lines, "\n")
}

func stepConfirmation(e *Engine, req *session.Request, ev Event) []Reply {
	switch ev.Callback {
	case "confirm_request":
		return e.finalize(req)
	case "cancel_request":
		e.sessions.Clear(req.UserID)
		return []Reply{{Text: "Заявка отменена. Используйте /start, чтобы начать заново."}}
	default:
		// Free-form input on the confirmation screen is ignored.
		return nil
	}
}

// finalize builds the payment link, notifies the operators and closes
// the session. A failed notification is reported softly, never as an
// error to the user.
func (e *Engine) finalize(req *session.Request) []Reply {
	req.PaymentLink = e.payments.Link(req)
	e.log.Infow("request confirmed",
		"user_id", req.UserID,
		"service", req.ServiceCode,
		"price", req.Price,
	)

	replies := []Reply{
		{
			Text:     "Вы можете оплатить заказ через Робокассу по ссылке ниже:",
			Keyboard: paymentKeyboard(req.PaymentLink),
		},
		{
			Text:     "Отчет о работе будет направлен в этот Telegram. Также доступен договор и реквизиты:",
			Keyboard: contractKeyboard(),
		},
	}

	if e.notifier.Notify(req) {
		replies = append(replies, Reply{Text: "Заявка отправлена. Мы свяжемся с Вами в ближайшее время!"})
	} else {
		replies = append(replies, Reply{Text: "Не удалось автоматически отправить уведомление по e-mail. Мы проверим заявку вручную."})
	}

	e.sessions.Clear(req.UserID)
	return replies
}
