package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/lead-manager/internal/config"
	"github.com/wolfman30/lead-manager/internal/leads"
	"github.com/wolfman30/lead-manager/internal/notify"
	"github.com/wolfman30/lead-manager/pkg/logging"
)

// BuildEmailSender picks the provider named by EMAIL_PROVIDER. An empty
// provider yields the logging stub.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (notify.EmailSender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.EmailProvider)) {
	case "":
		return notify.NewStubEmailSender(logger), nil
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender == nil {
			return nil, errors.New("bootstrap: sendgrid api key missing")
		}
		return sender, nil
	case "ses":
		if loadAWS == nil {
			return nil, errors.New("bootstrap: aws config loader required for ses")
		}
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: aws config: %w", err)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown email provider %q", cfg.EmailProvider)
	}
}

// BuildLeadNotifier returns nil when LEAD_ALERT_EMAIL is unset.
func BuildLeadNotifier(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (leads.Notifier, error) {
	if strings.TrimSpace(cfg.LeadAlertEmail) == "" {
		return nil, nil
	}
	sender, err := BuildEmailSender(ctx, cfg, loadAWS, logger)
	if err != nil {
		return nil, err
	}
	alerter := notify.NewLeadAlerter(sender, cfg.LeadAlertEmail, logger.WithComponent("lead-alerts"))
	if alerter == nil {
		return nil, nil
	}
	return alerter, nil
}
