package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type MailerConfig struct {
	APIKey string
	From   string
	// FallbackLog allows the plaintext code to be written to the local log
	// when delivery is unavailable or fails. On by default in development,
	// must be explicitly enabled in production.
	FallbackLog bool
}

func NewMailerConfig() *MailerConfig {
	apiKey := os.Getenv("RESEND_API_KEY")
	from := os.Getenv("RESEND_FROM")
	if from == "" {
		from = "onboarding@resend.dev"
	}
	fallback := apiKey == "" || os.Getenv("OTP_FALLBACK_LOG") == "true"
	if os.Getenv("APP_ENV") == "production" {
		fallback = os.Getenv("OTP_FALLBACK_LOG") == "true"
	}
	return &MailerConfig{APIKey: apiKey, From: from, FallbackLog: fallback}
}

// OtpMailer delivers one-time codes over Resend. Without an API key it runs
// in log-only mode so local development works without outbound mail.
type OtpMailer struct {
	config *MailerConfig
	client *resend.Client
	logger *zap.Logger
}

func NewOtpMailer(lc fx.Lifecycle, config *MailerConfig, logger *zap.Logger) *OtpMailer {
	m := &OtpMailer{config: config, logger: logger}
	if config.APIKey != "" {
		m.client = resend.NewClient(config.APIKey)
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if m.client == nil {
				logger.Warn("RESEND_API_KEY not set, OTP codes will be logged instead of emailed")
			} else {
				logger.Info("mailer initialized", zap.String("from", config.From))
			}
			return nil
		},
	})
	return m
}

func (m *OtpMailer) SendOtp(ctx context.Context, to, purpose, code string, ttl time.Duration) error {
	if m.client == nil {
		m.logFallback(to, purpose, code)
		return nil
	}

	minutes := int(ttl / time.Minute)
	html := fmt.Sprintf(`<div style="font-family:Arial,sans-serif;line-height:1.6">
  <h2>Verification Code</h2>
  <p>Your OTP for <strong>%s</strong> is:</p>
  <p style="font-size:24px;font-weight:bold;letter-spacing:2px">%s</p>
  <p>This code expires in %d minutes.</p>
</div>`, purpose, code, minutes)

	params := &resend.SendEmailRequest{
		From:    m.config.From,
		To:      []string{to},
		Subject: fmt.Sprintf("Your OTP code for %s", purpose),
		Html:    html,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		m.logger.Error("failed to send OTP email", zap.String("to", to), zap.String("purpose", purpose), zap.Error(err))
		m.logFallback(to, purpose, code)
		return err
	}
	return nil
}

func (m *OtpMailer) logFallback(to, purpose, code string) {
	if !m.config.FallbackLog {
		return
	}
	m.logger.Info("[EMAIL OTP - fallback log]",
		zap.String("to", to),
		zap.String("purpose", purpose),
		zap.String("code", code))
}

// DeliveryConfigured reports whether real email delivery is available. Used by
// the debug status endpoint; never exposes the key itself.
func (m *OtpMailer) DeliveryConfigured() bool {
	return m.client != nil
}

func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
