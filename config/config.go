package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings. Everything is sourced from the
// environment (optionally via a .env file).
type Config struct {
	Telegram struct {
		Token         string
		GreetingImage string
	}
	Email struct {
		Host     string
		Port     int
		From     string
		Password string
		To       string   // comma separated primary list
		Extra    []string // EMAIL_TO_1 .. EMAIL_TO_4
	}
	Robokassa struct {
		MerchantLogin       string
		Password1           string
		BaseURL             string
		DescriptionTemplate string
	}
	Server struct {
		Port string
	}
	ShutdownTimeout time.Duration
}

// Load reads settings from the environment, consulting a .env file if
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("EMAIL_PORT", 465)
	v.SetDefault("ROBOKASSA_MERCHANT_LOGIN", "infsectest_ru")
	v.SetDefault("ROBOKASSA_BASE_URL", "https://auth.robokassa.ru/Merchant/Index.aspx")
	v.SetDefault("PAYMENT_DESCRIPTION_TEMPLATE",
		`Оплата {price} руб за оказание услуги: "{service}", объект для проверки: {target}`)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg := &Config{}
	cfg.Telegram.Token = v.GetString("TOKEN")
	cfg.Telegram.GreetingImage = v.GetString("GREETING_IMAGE")

	cfg.Email.Host = v.GetString("HOST")
	cfg.Email.Port = v.GetInt("EMAIL_PORT")
	cfg.Email.From = v.GetString("EMAIL_FROM")
	cfg.Email.Password = v.GetString("EMAIL_PASSWORD")
	cfg.Email.To = v.GetString("EMAIL_TO")
	for _, key := range []string{"EMAIL_TO_1", "EMAIL_TO_2", "EMAIL_TO_3", "EMAIL_TO_4"} {
		cfg.Email.Extra = append(cfg.Email.Extra, v.GetString(key))
	}

	cfg.Robokassa.MerchantLogin = v.GetString("ROBOKASSA_MERCHANT_LOGIN")
	cfg.Robokassa.Password1 = v.GetString("ROBOKASSA_PASSWORD1")
	cfg.Robokassa.BaseURL = v.GetString("ROBOKASSA_BASE_URL")
	cfg.Robokassa.DescriptionTemplate = v.GetString("PAYMENT_DESCRIPTION_TEMPLATE")

	cfg.Server.Port = v.GetString("SERVER_PORT")
	cfg.ShutdownTimeout = v.GetDuration("SHUTDOWN_TIMEOUT")

	return cfg, nil
}

// Validate reports the first missing required setting. The process must
// not start with an incomplete configuration.
func (c *Config) Validate() error {
	switch {
	case c.Telegram.Token == "":
		return fmt.Errorf("TOKEN is not configured")
	case c.Email.Host == "":
		return fmt.Errorf("HOST (SMTP server) is not configured")
	case c.Email.From == "":
		return fmt.Errorf("EMAIL_FROM is not configured")
	case c.Email.Password == "":
		return fmt.Errorf("EMAIL_PASSWORD is not configured")
	case c.Robokassa.Password1 == "":
		return fmt.Errorf("ROBOKASSA_PASSWORD1 is not configured")
	}
	return nil
}

// Recipients returns the combined notification recipient list: the
// comma-separated EMAIL_TO entries followed by the EMAIL_TO_N slots,
// de-duplicated with first-seen order preserved.
func (c *Config) Recipients() []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	for _, addr := range strings.Split(c.Email.To, ",") {
		add(addr)
	}
	for _, addr := range c.Email.Extra {
		add(addr)
	}
	return out
}
