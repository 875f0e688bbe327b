package httpapi

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
)

const (
	feedbackNotificationSubjectTemplate = "New feedback for %s"
	feedbackNotificationBodyTemplate    = "Contact %s left the following feedback:\n\n%s"
)

// FeedbackNotifier dispatches notifications for negative feedback submissions.
// Failures never block the submission; they are logged by the caller.
type FeedbackNotifier interface {
	NotifyNegativeFeedback(ctx context.Context, client model.Client, feedback model.NegativeFeedback) error
}

type noopFeedbackNotifier struct{}

func (noopFeedbackNotifier) NotifyNegativeFeedback(ctx context.Context, client model.Client, feedback model.NegativeFeedback) error {
	return nil
}

func resolveFeedbackNotifier(notifier FeedbackNotifier) FeedbackNotifier {
	if notifier == nil {
		return noopFeedbackNotifier{}
	}
	return notifier
}

// EmailFeedbackNotifier forwards negative feedback to the client's
// configured notification address through an EmailSender.
type EmailFeedbackNotifier struct {
	sender EmailSender
}

// NewEmailFeedbackNotifier creates a notifier backed by the provided sender.
func NewEmailFeedbackNotifier(sender EmailSender) *EmailFeedbackNotifier {
	return &EmailFeedbackNotifier{sender: resolveEmailSender(sender)}
}

// NotifyNegativeFeedback emails the feedback text to the client's
// notification address. Clients without an address are skipped.
func (notifier *EmailFeedbackNotifier) NotifyNegativeFeedback(ctx context.Context, client model.Client, feedback model.NegativeFeedback) error {
	recipient := strings.TrimSpace(client.NotificationEmail)
	if recipient == "" {
		return nil
	}

	subject := fmt.Sprintf(feedbackNotificationSubjectTemplate, strings.TrimSpace(client.ClientName))
	body := fmt.Sprintf(feedbackNotificationBodyTemplate, feedback.ContactID, feedback.FeedbackText)
	return notifier.sender.SendEmail(ctx, recipient, subject, body)
}

func applyFeedbackNotification(ctx context.Context, logger *zap.Logger, notifier FeedbackNotifier, client model.Client, feedback model.NegativeFeedback) {
	if notifier == nil {
		return
	}
	if notifyErr := notifier.NotifyNegativeFeedback(ctx, client, feedback); notifyErr != nil {
		if logger != nil {
			logger.Warn("feedback_notification_failed",
				zap.Error(notifyErr),
				zap.String("client_id", client.ID),
				zap.String("feedback_id", feedback.ID),
			)
		}
	}
}
