package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	awsclient "franchise-ops/internal/common/aws"
	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/models"
)

// SESNotifier emails operators about critical notifications only; other
// levels are skipped without error.
type SESNotifier struct {
	client awsclient.SESAPI
	from   string
	to     []string
}

func NewSESNotifier(client awsclient.SESAPI, from string, to []string) *SESNotifier {
	return &SESNotifier{client: client, from: from, to: to}
}

func (s *SESNotifier) Notify(ctx context.Context, n models.Notification) error {
	if n.Level != models.NotificationCritical || len(s.to) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[critical] %s", n.Title)
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: s.to,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(emailBody(n))},
			},
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("ses", err)
	}

	metrics.NotificationsSent.WithLabelValues("ses", string(n.Level)).Inc()
	return nil
}

func emailBody(n models.Notification) string {
	var b strings.Builder
	b.WriteString(n.Message)
	b.WriteString("\n\n")
	if n.MenuItemID != "" {
		fmt.Fprintf(&b, "Menu item: %s\n", n.MenuItemID)
	}
	if n.SessionID != "" {
		fmt.Fprintf(&b, "Session: %s\n", n.SessionID)
	}
	if n.TenantID != "" {
		fmt.Fprintf(&b, "Tenant: %s\n", n.TenantID)
	}
	fmt.Fprintf(&b, "Raised at: %s\n", n.CreatedAt)
	return b.String()
}
