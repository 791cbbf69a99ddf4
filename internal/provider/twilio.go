package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/opendoors/notify-relay/internal/config"
	"github.com/opendoors/notify-relay/internal/model"
)

const whatsAppPrefix = "whatsapp:"

// ErrChannelUnavailable is returned when no sender number is configured for a channel.
var ErrChannelUnavailable = errors.New("channel not configured")

// Error is a delivery rejected by Twilio. Error() is the provider's
// human-readable description.
type Error struct {
	Code    int
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type Twilio struct {
	api            messageCreator
	phoneNumber    string
	whatsAppNumber string
}

func NewTwilio(cfg config.TwilioConfig) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilio(client.Api, cfg)
}

func newTwilio(api messageCreator, cfg config.TwilioConfig) *Twilio {
	return &Twilio{
		api:            api,
		phoneNumber:    cfg.PhoneNumber,
		whatsAppNumber: cfg.WhatsAppNumber,
	}
}

// Send places one message with Twilio and returns the message SID.
func (t *Twilio) Send(ctx context.Context, msg model.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	from, to, err := t.addresses(msg)
	if err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(msg.Body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return "", convertError(err)
	}
	if resp != nil && resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

func (t *Twilio) addresses(msg model.Message) (from, to string, err error) {
	switch msg.Channel {
	case model.ChannelWhatsApp:
		if t.whatsAppNumber == "" {
			return "", "", fmt.Errorf("%w: %s", ErrChannelUnavailable, msg.Channel)
		}
		return qualify(whatsAppPrefix, t.whatsAppNumber), qualify(whatsAppPrefix, msg.To), nil
	case model.ChannelSMS, "":
		return t.phoneNumber, strings.TrimSpace(msg.To), nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrChannelUnavailable, msg.Channel)
	}
}

func qualify(prefix, number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, prefix) {
		return number
	}
	return prefix + number
}

func convertError(err error) error {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		message := restErr.Message
		if message == "" {
			message = restErr.Error()
		}
		return &Error{Code: restErr.Code, Status: restErr.Status, Message: message}
	}
	return err
}
