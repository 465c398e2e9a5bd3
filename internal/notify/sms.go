package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"ibms-backend/internal/config"
)

// SMSSender delivers a short text message to a phone number.
type SMSSender interface {
	SendSMS(to, body string) error
}

type twilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender builds an SMSSender backed by the Twilio Messages API.
func NewTwilioSender(cfg config.Config) SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &twilioSender{client: client, from: cfg.TwilioFromNumber}
}

func (t *twilioSender) SendSMS(to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	return nil
}
