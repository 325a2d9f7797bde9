package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSocialNetworkAliases(t *testing.T) {
	cases := []struct {
		input string
		label string
	}{
		{"vk", "Вконтакте"},
		{"ВК", "Вконтакте"},
		{"  Вконтакте  ", "Вконтакте"},
		{"INST", "Instagram"},
		{"фейсбук", "Facebook"},
		{"почта", "Email"},
		{"web", "WEB-сайты и CMS системы"},
		{"САЙТ", "WEB-сайты и CMS системы"},
	}
	for _, tc := range cases {
		network := ResolveSocialNetwork(tc.input)
		require.NotNil(t, network, "input %q", tc.input)
		assert.Equal(t, tc.label, network.Label, "input %q", tc.input)
	}
}

func TestResolveSocialNetworkUnknown(t *testing.T) {
	assert.Nil(t, ResolveSocialNetwork("myspace"))
	assert.Nil(t, ResolveSocialNetwork(""))
}

func TestResolveFoldsYo(t *testing.T) {
	// "ё" in input matches aliases spelled with "е".
	service := ResolveServiceOption("расслЁдование")
	require.NotNil(t, service)
	assert.Equal(t, "investigation", service.Code)
}

func TestResolveServiceOption(t *testing.T) {
	service := ResolveServiceOption(" Мониторинг ")
	require.NotNil(t, service)
	assert.Equal(t, "monitoring", service.Code)
	assert.True(t, service.RequiresPlan())

	service = ResolveServiceOption("взлом")
	require.NotNil(t, service)
	assert.Equal(t, "intrusion_check", service.Code)
	assert.False(t, service.RequiresPlan())

	assert.Nil(t, ResolveServiceOption("чистка кармы"))
}

func TestResolveByCodeAndLabel(t *testing.T) {
	// Code and display label work as lookup keys too.
	require.NotNil(t, ResolveServiceOption("leak_analysis"))
	require.NotNil(t, ResolveServiceOption("Анализ утечек"))
}

func TestFindPlan(t *testing.T) {
	monitoring := ServiceByCode("monitoring")
	require.NotNil(t, monitoring)

	plan := FindPlan(monitoring, "daily")
	require.NotNil(t, plan)
	assert.Equal(t, 4500, plan.Price)
	assert.Equal(t, "Ежедневно за 4500 руб/мес", plan.Label)

	assert.Nil(t, FindPlan(monitoring, "hourly"))
	assert.Nil(t, FindPlan(ServiceByCode("investigation"), "daily"))
}

func TestServiceByCodeUnknown(t *testing.T) {
	assert.Nil(t, ServiceByCode("nope"))
}

func TestPriceXorPlans(t *testing.T) {
	// Every service either has a fixed price or plans, never both and
	// never neither.
	for _, s := range ServiceOptions {
		hasPrice := s.Price > 0
		assert.NotEqual(t, hasPrice, s.RequiresPlan(), "service %s", s.Code)
	}
}
