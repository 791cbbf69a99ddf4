package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/opendoors/notify-relay/internal/model"
)

// Sender delivers one message over its channel and returns a provider id.
type Sender interface {
	Send(ctx context.Context, msg model.Message) (string, error)
}

// Recorder receives settled delivery attempts.
type Recorder interface {
	ObserveDelivery(party, channel string, err error)
	ObserveDispatch()
}

const (
	sourceDirect = "direct"
	sourceTest   = "test"
)

type NotificationService struct {
	sender  Sender
	metrics Recorder
	log     zerolog.Logger
}

type SendInput struct {
	PhoneNumber string
	Message     string
	Type        string
}

// DeliveryOutcome is the settled state of one fan-out attempt.
type DeliveryOutcome struct {
	Party     model.PartyRole
	PartyID   string
	Channel   model.Channel
	To        string
	MessageID string
	Err       error
}

func (o DeliveryOutcome) Failed() bool {
	return o.Err != nil
}

type DispatchResult struct {
	MatchID  string
	Outcomes []DeliveryOutcome
}

// Failed counts the attempts that did not reach the provider successfully.
func (r DispatchResult) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

type attempt struct {
	party *model.Party
	role  model.PartyRole
	msg   model.Message
}

func NewNotificationService(sender Sender, metrics Recorder, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		sender:  sender,
		metrics: metrics,
		log:     log,
	}
}

func (s *NotificationService) Send(ctx context.Context, input SendInput) error {
	return s.sendOne(ctx, sourceDirect, input)
}

func (s *NotificationService) SendTest(ctx context.Context, input SendInput) error {
	return s.sendOne(ctx, sourceTest, input)
}

func (s *NotificationService) sendOne(ctx context.Context, source string, input SendInput) error {
	msg := model.Message{
		Channel: model.ParseChannel(input.Type),
		To:      input.PhoneNumber,
		Body:    input.Message,
	}

	id, err := s.sender.Send(ctx, msg)
	s.observe(source, msg.Channel, err)
	if err != nil {
		s.log.Error().Err(err).
			Str("source", source).
			Str("channel", string(msg.Channel)).
			Str("to", msg.To).
			Msg("send notification failed")
		return &SendError{Channel: msg.Channel, Err: err}
	}

	s.log.Info().
		Str("source", source).
		Str("channel", string(msg.Channel)).
		Str("to", msg.To).
		Str("message_id", id).
		Msg("notification sent")
	return nil
}

// DispatchMatch notifies both sides of a match on every channel they opted
// into. Attempts run concurrently and every one settles before it returns.
// Delivery failures are logged and reported in the result, never as an error;
// the only error is ErrMissingData.
func (s *NotificationService) DispatchMatch(ctx context.Context, req model.MatchRequest) (*DispatchResult, error) {
	if err := validateMatch(req); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDispatch()
	}

	attempts := planAttempts(req)
	log := s.log.With().Str("match_id", req.MatchID.String()).Logger()
	log.Info().Int("attempts", len(attempts)).Msg("dispatching match notifications")

	// Deliveries run to completion even if the caller goes away.
	sendCtx := context.WithoutCancel(ctx)

	p := pool.NewWithResults[DeliveryOutcome]()
	for _, a := range attempts {
		log.Info().
			Str("party", string(a.role)).
			Str("party_id", a.party.ID.String()).
			Str("channel", string(a.msg.Channel)).
			Str("to", a.msg.To).
			Msg("attempting delivery")
		a := a // per-iteration copy (go directive < 1.22)
		p.Go(func() DeliveryOutcome {
			return s.deliver(sendCtx, log, a)
		})
	}
	outcomes := p.Wait()

	result := &DispatchResult{MatchID: req.MatchID.String(), Outcomes: outcomes}
	failed := result.Failed()

	// The caller is told the dispatch succeeded either way; a match where
	// nothing got through is only visible here.
	var summary *zerolog.Event
	if failed > 0 && failed == len(outcomes) {
		summary = log.Warn()
	} else {
		summary = log.Info()
	}
	summary.
		Int("attempts", len(outcomes)).
		Int("failed", failed).
		Msg("match notifications settled")
	return result, nil
}

func (s *NotificationService) deliver(ctx context.Context, log zerolog.Logger, a attempt) DeliveryOutcome {
	id, err := s.sender.Send(ctx, a.msg)
	s.observe(string(a.role), a.msg.Channel, err)

	outcome := DeliveryOutcome{
		Party:     a.role,
		PartyID:   a.party.ID.String(),
		Channel:   a.msg.Channel,
		To:        a.msg.To,
		MessageID: id,
		Err:       err,
	}
	if err != nil {
		log.Error().Err(err).
			Str("party", string(a.role)).
			Str("party_id", a.party.ID.String()).
			Str("channel", string(a.msg.Channel)).
			Msg("delivery failed")
	}
	return outcome
}

func (s *NotificationService) observe(party string, ch model.Channel, err error) {
	if s.metrics != nil {
		s.metrics.ObserveDelivery(party, string(ch), err)
	}
}

func validateMatch(req model.MatchRequest) error {
	switch {
	case strings.TrimSpace(req.MatchID.String()) == "":
		return fmt.Errorf("%w: matchId is required", ErrMissingData)
	case req.Farmer == nil:
		return fmt.Errorf("%w: farmer is required", ErrMissingData)
	case req.Recipient == nil:
		return fmt.Errorf("%w: recipient is required", ErrMissingData)
	case req.Farmer.Phone == "":
		return fmt.Errorf("%w: farmer.phone is required", ErrMissingData)
	case req.Recipient.Phone == "":
		return fmt.Errorf("%w: recipient.phone is required", ErrMissingData)
	}
	return nil
}

func planAttempts(req model.MatchRequest) []attempt {
	bodies := []struct {
		party *model.Party
		role  model.PartyRole
		body  string
	}{
		{req.Farmer, model.PartyRoleFarmer, FarmerMessage(req.Recipient)},
		{req.Recipient, model.PartyRoleRecipient, RecipientMessage(req.Farmer)},
	}

	attempts := make([]attempt, 0, len(bodies)*len(model.Channels))
	for _, b := range bodies {
		for _, ch := range model.Channels {
			if !b.party.WantsChannel(ch) {
				continue
			}
			attempts = append(attempts, attempt{
				party: b.party,
				role:  b.role,
				msg: model.Message{
					Channel: ch,
					To:      b.party.AddressFor(ch),
					Body:    b.body,
				},
			})
		}
	}
	return attempts
}
