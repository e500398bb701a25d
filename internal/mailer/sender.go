package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// CharSet applies to the subject and both bodies.
const CharSet = "UTF-8"

// SESClient defines the interface for SES operations.
type SESClient interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender sends email through SES from a fixed sender address.
type Sender struct {
	client SESClient
	from   string
}

// NewSender creates a new Sender.
func NewSender(client SESClient, from string) *Sender {
	return &Sender{
		client: client,
		from:   from,
	}
}

// Send delivers content to a single recipient and returns the transport
// message id.
func (s *Sender) Send(ctx context.Context, to string, content Content) (string, error) {
	output, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(content.Subject),
					Charset: aws.String(CharSet),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(content.HTML),
						Charset: aws.String(CharSet),
					},
					Text: &types.Content{
						Data:    aws.String(content.Text),
						Charset: aws.String(CharSet),
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("send email to %s: %w", to, err)
	}
	return aws.ToString(output.MessageId), nil
}
