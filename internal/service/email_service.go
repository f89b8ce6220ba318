package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"familywallet/internal/config"
)

// EmailService sends invite emails through SES. When no from-address is
// configured the service is disabled and sends become logged no-ops.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	baseURL   string
	enabled   bool
}

// NewEmailService creates an email service from the app config
func NewEmailService(cfg *config.Config) (*EmailService, error) {
	if cfg.SESFromEmail == "" {
		log.Println("email service disabled: no from-address configured")
		return &EmailService{enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &EmailService{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.SESFromEmail,
		fromName:  cfg.SESFromName,
		baseURL:   cfg.AppBaseURL,
		enabled:   true,
	}, nil
}

// Enabled reports whether emails will actually be sent
func (s *EmailService) Enabled() bool {
	return s.enabled
}

// SendInvite emails a family invite code to the given address
func (s *EmailService) SendInvite(ctx context.Context, toEmail, inviteCode string) error {
	if !s.enabled {
		log.Printf("email service disabled, skipping invite to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("%s: приглашение в семью", s.fromName)
	body := fmt.Sprintf(
		"Вас пригласили присоединиться к семейному кошельку.\n\nКод приглашения: %s\n\nОткройте %s и введите код.",
		inviteCode, s.baseURL,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	return nil
}
