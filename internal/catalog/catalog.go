// Package catalog holds the fixed registry of supported platforms,
// services and subscription plans, with case-insensitive alias lookup.
package catalog

import "strings"

// SocialNetwork is a platform a check can be ordered for.
type SocialNetwork struct {
	Code    string
	Label   string
	Aliases []string
}

// SubscriptionPlan is one monitoring periodicity with its monthly price
// in rubles.
type SubscriptionPlan struct {
	Code        string
	Label       string
	Price       int
	Description string
}

// ServiceOption is an orderable service. Either Price is set, or the
// service is priced through one of its Plans, never both.
type ServiceOption struct {
	Code        string
	Label       string
	Price       int // 0 when the price comes from a plan
	Description string
	PaymentHint string
	PhonePrompt string
	Aliases     []string
	Plans       []SubscriptionPlan
}

// RequiresPlan reports whether the user must pick a subscription plan
// for this service.
func (s *ServiceOption) RequiresPlan() bool {
	return len(s.Plans) > 0
}

const (
	defaultPaymentHint = "Оплата осуществляется через авторизованный сервис Робокасса, являющийся одним из ведущих в РФ, что гарантирует безопасность платежей ⚒"
	defaultPhonePrompt = "Введите номер телефона ☎️ привязанный к выбранному аккаунту"
)

// SocialNetworks lists every supported platform, in display order.
var SocialNetworks = []SocialNetwork{
	{Code: "вконтакте", Label: "Вконтакте", Aliases: []string{"vk", "вк", "vkontakte"}},
	{Code: "instagram", Label: "Instagram", Aliases: []string{"inst", "инстаграм", "instagram"}},
	{Code: "facebook", Label: "Facebook", Aliases: []string{"fb", "фейсбук"}},
	{Code: "email", Label: "Email", Aliases: []string{"e-mail", "почта"}},
	{
		Code:    "web-сайты и cms системы",
		Label:   "WEB-сайты и CMS системы",
		Aliases: []string{"web", "сайт", "cms", "web-сайты", "web-сайты и cms системы"},
	},
}

// MonitoringPlans are the periodicity options for the monitoring
// service.
var MonitoringPlans = []SubscriptionPlan{
	{Code: "monthly", Label: "Ежемесячно за 250 руб/мес", Price: 250, Description: "Базовый мониторинг с отчетом раз в месяц."},
	{Code: "weekly", Label: "Еженедельно за 800 руб/мес", Price: 800, Description: "Подробные отчеты каждую неделю."},
	{Code: "daily", Label: "Ежедневно за 4500 руб/мес", Price: 4500, Description: "Максимальная скорость реакции и ежедневные отчеты."},
}

// ServiceOptions lists every orderable service, in display order.
var ServiceOptions = []ServiceOption{
	{
		Code:  "intrusion_check",
		Label: "Узнать, пытались ли взломать",
		Price: 3000,
		Description: "Я помогу узнать, заказывали ли взлом Вашего аккаунта в Darknet или у профессиональных хакеров 🖥. " +
			"Предоставлю Вам информацию по целевым атакам, их датам и успешности.",
		PaymentHint: defaultPaymentHint,
		PhonePrompt: defaultPhonePrompt,
		Aliases:     []string{"узнать, пытались ли взломать", "взлом", "инцидент"},
	},
	{
		Code:        "security_risk",
		Label:       "Анализ рисков безопасности",
		Price:       300,
		Description: "Будет произведен анализ Вашего аккаунта на возможные риски несанкционированного доступа 🗝",
		PaymentHint: defaultPaymentHint,
		PhonePrompt: defaultPhonePrompt,
		Aliases:     []string{"анализ рисков безопасности", "риски", "безопасность"},
	},
	{
		Code:        "leak_analysis",
		Label:       "Анализ утечек",
		Price:       300,
		Description: "Проверьте, взламывали ли Ваш аккаунт и есть ли риск утечки данных",
		PaymentHint: defaultPaymentHint,
		PhonePrompt: defaultPhonePrompt,
		Aliases:     []string{"анализ утечек", "утечки", "утечка"},
	},
	{
		Code:  "monitoring",
		Label: "Мониторинг",
		Description: "Укажите периодичность мониторинга информационной безопасности Вашего аккаунта. " +
			"Отчеты будут предоставляться в формате Secret Chat. Первый отчет через 2 дня после заказа 👇",
		PaymentHint: defaultPaymentHint,
		PhonePrompt: defaultPhonePrompt,
		Aliases:     []string{"мониторинг", "наблюдение"},
		Plans:       MonitoringPlans,
	},
	{
		Code:  "investigation",
		Label: "Расследование",
		Price: 30000,
		Description: "Если у Вас произошел инцидент несанкционированного доступа 🕷. " +
			"Мы поможем найти злоумышленника и предоставим расширенные сведения, которые помогут разобраться в ситуации.",
		PaymentHint: defaultPaymentHint,
		PhonePrompt: defaultPhonePrompt,
		Aliases:     []string{"расследование", "инцидент расследование", "investigation"},
	},
}

var (
	socialNetworkIndex = buildSocialIndex()
	serviceOptionIndex = buildServiceIndex()
)

// Normalize folds user input for alias matching: trim, lowercase and
// treat "ё" as "е".
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "ё", "е")
}

func buildSocialIndex() map[string]*SocialNetwork {
	index := make(map[string]*SocialNetwork)
	for i := range SocialNetworks {
		n := &SocialNetworks[i]
		for _, alias := range append([]string{n.Code, n.Label}, n.Aliases...) {
			index[Normalize(alias)] = n
		}
	}
	return index
}

func buildServiceIndex() map[string]*ServiceOption {
	index := make(map[string]*ServiceOption)
	for i := range ServiceOptions {
		s := &ServiceOptions[i]
		for _, alias := range append([]string{s.Code, s.Label}, s.Aliases...) {
			index[Normalize(alias)] = s
		}
	}
	return index
}

// ResolveSocialNetwork maps free-form user input to a platform. A nil
// result means "no match, ask again" and is not an error.
func ResolveSocialNetwork(text string) *SocialNetwork {
	return socialNetworkIndex[Normalize(text)]
}

// ResolveServiceOption maps free-form user input to a service.
func ResolveServiceOption(text string) *ServiceOption {
	return serviceOptionIndex[Normalize(text)]
}

// ServiceByCode returns the service with the exact code, or nil.
func ServiceByCode(code string) *ServiceOption {
	for i := range ServiceOptions {
		if ServiceOptions[i].Code == code {
			return &ServiceOptions[i]
		}
	}
	return nil
}

// FindPlan returns the service's plan with the exact code, or nil.
func FindPlan(service *ServiceOption, planCode string) *SubscriptionPlan {
	for i := range service.Plans {
		if service.Plans[i].Code == planCode {
			return &service.Plans[i]
		}
	}
	return nil
}
