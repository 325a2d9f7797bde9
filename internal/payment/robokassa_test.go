package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infsectest/ist-detector/internal/session"
)

func testRobokassa() *Robokassa {
	return &Robokassa{
		MerchantLogin:       "testlogin",
		Password1:           "secret",
		BaseURL:             "https://auth.robokassa.ru/Merchant/Index.aspx",
		DescriptionTemplate: `Оплата {price} руб за оказание услуги: "{service}", объект для проверки: {target}`,
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "250", FormatPrice(250))
	assert.Equal(t, "3 000", FormatPrice(3000))
	assert.Equal(t, "4 500", FormatPrice(4500))
	assert.Equal(t, "30 000", FormatPrice(30000))
	assert.Equal(t, "1 234 567", FormatPrice(1234567))
}

func TestSignature(t *testing.T) {
	r := testRobokassa()
	// Known vector over "testlogin:4500:0:secret:Shp_phone=+79991234567:Shp_telegram=42".
	assert.Equal(t, "c114f9d2c3e8cfddcdb443c5536656c1", r.signature(4500, "+79991234567", 42))
}

func TestDescriptionEncoding(t *testing.T) {
	r := testRobokassa()
	r.DescriptionTemplate = "{price} / {service} / {target}"
	desc := r.description(3000, "Проверка", "Вконтакте: id1")

	// Spaces as %20, slashes untouched, everything non-ASCII encoded.
	assert.Contains(t, desc, "3%20000")
	assert.Contains(t, desc, "/")
	assert.NotContains(t, desc, "+")
	assert.NotContains(t, desc, " ")
	assert.NotContains(t, desc, "%2F")
}

func TestLink(t *testing.T) {
	r := testRobokassa()
	req := &session.Request{
		UserID:       42,
		SocialNet:    "Вконтакте",
		ServiceLabel: "Мониторинг",
		Link:         "myhandle",
		Price:        4500,
		PlanLabel:    "Ежедневно за 4500 руб/мес",
		Phone:        "+79991234567",
	}

	link := r.Link(req)
	require.True(t, strings.HasPrefix(link, "https://auth.robokassa.ru/Merchant/Index.aspx?"))
	assert.Contains(t, link, "MerchantLogin=testlogin")
	assert.Contains(t, link, "InvId=0")
	assert.Contains(t, link, "Culture=ru")
	assert.Contains(t, link, "Encoding=utf-8")
	assert.Contains(t, link, "OutSum=4500")
	assert.Contains(t, link, "Shp_phone=+79991234567")
	assert.Contains(t, link, "Shp_telegram=42")
	assert.Contains(t, link, "SignatureValue=c114f9d2c3e8cfddcdb443c5536656c1")
	// Plan label lands in the encoded description target.
	assert.Contains(t, link, "Description=")
}

func TestLinkWithoutPlan(t *testing.T) {
	r := testRobokassa()
	r.DescriptionTemplate = "{target}"
	req := &session.Request{
		UserID:       7,
		SocialNet:    "Facebook",
		ServiceLabel: "Анализ утечек",
		Link:         "fb.com/me",
		Price:        300,
		Phone:        "79990000000",
	}

	link := r.Link(req)
	assert.Contains(t, link, "OutSum=300")
	// No plan: target is just "<network>: <link>", no parentheses.
	assert.Contains(t, link, "Description=Facebook%3A%20fb.com/me")
	assert.NotContains(t, link, "%28")
}
