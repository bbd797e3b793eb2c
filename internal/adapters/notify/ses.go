package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
)

const charset = "UTF-8"

// EmailSender is the subset of the SES client the notifier uses. It exists
// so tests can substitute a fake client.
type EmailSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier emails students a confirmation of their signup or
// unregistration through AWS SES.
type SESNotifier struct {
	client EmailSender
	sender string
	region string
	logger logger.Logger
}

// NewSESNotifier creates a notifier that sends from the given verified
// sender address. Unless a client is injected via WithClient, AWS
// credentials and region resolve through the SDK's default chain.
func NewSESNotifier(ctx context.Context, sender string, opts ...Option) (*SESNotifier, error) {
	if sender == "" {
		return nil, ErrMissingSender
	}

	n := &SESNotifier{
		sender: sender,
		logger: logger.Get().Named("notify"),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.client == nil {
		var loadOpts []func(*config.LoadOptions) error
		if n.region != "" {
			loadOpts = append(loadOpts, config.WithRegion(n.region))
		}
		cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		n.client = ses.NewFromConfig(cfg)
	}

	return n, nil
}

// Notify implements Notifier by sending a confirmation email to the
// student named in the event.
func (n *SESNotifier) Notify(ctx context.Context, event model.RegistrationEvent) error {
	subject, body := composeConfirmation(event)

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{event.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String(charset),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Charset: aws.String(charset),
					Data:    aws.String(body),
				},
			},
		},
		Source: aws.String(n.sender),
	}

	out, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send confirmation to %s: %w", event.Email, err)
	}

	n.logger.Debug(ctx, "confirmation sent",
		logger.String("email", event.Email),
		logger.String("activity", event.Activity),
		logger.String("messageID", aws.ToString(out.MessageId)),
	)
	return nil
}

// composeConfirmation derives the email subject and body from the event.
func composeConfirmation(event model.RegistrationEvent) (subject, body string) {
	switch event.Kind {
	case model.KindUnregister:
		subject = fmt.Sprintf("Mergington High School: unregistered from %s", event.Activity)
		body = fmt.Sprintf("You have been unregistered from %s. We hope to see you in another activity soon.", event.Activity)
	default:
		subject = fmt.Sprintf("Mergington High School: signed up for %s", event.Activity)
		body = fmt.Sprintf("You are signed up for %s. See you there!", event.Activity)
	}
	return subject, body
}
