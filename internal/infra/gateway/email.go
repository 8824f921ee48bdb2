package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"templatehub/internal/pkg/config"
	"templatehub/internal/pkg/errs"
	"templatehub/internal/usecase/commands"

	"github.com/go-resty/resty/v2"
)

// EmailNotifier delivers the credential email through a transactional email
// API (Resend-compatible JSON surface).
type EmailNotifier struct {
	client *resty.Client
	cfg    config.EmailConfig
}

func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	client := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey)

	return &EmailNotifier{client: client, cfg: cfg}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *EmailNotifier) Send(ctx context.Context, delivery commands.CredentialDelivery) (*commands.DeliveryOutcome, error) {
	body := sendEmailRequest{
		From:    n.cfg.FromAddress,
		To:      []string{delivery.Email},
		Subject: fmt.Sprintf("Your %s template license", delivery.Package),
		HTML:    renderDeliveryHTML(delivery),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/emails")
	if err != nil {
		return nil, errs.Wrap(err, "email provider unreachable")
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		// Ordinary delivery failure: reported via the outcome, not an error.
		slog.Warn("credential email rejected by provider",
			"status", resp.StatusCode(),
			"to", delivery.Email)
		return &commands.DeliveryOutcome{Success: false}, nil
	}

	return &commands.DeliveryOutcome{Success: true}, nil
}

func renderDeliveryHTML(d commands.CredentialDelivery) string {
	greeting := "Hi"
	if d.CustomerName != nil && *d.CustomerName != "" {
		greeting = "Hi " + *d.CustomerName
	}

	return fmt.Sprintf(`
		<p>%s,</p>
		<p>Thanks for purchasing the <strong>%s</strong> template package.</p>
		<p>License key: <code>%s</code></p>
		<p><a href="%s">Download your template</a></p>
		<p>Keep this email: the license key is required for updates and support.</p>`,
		greeting, d.Package, d.LicenseKey, d.DownloadURL,
	)
}
