package service

import (
	"errors"
	"fmt"

	"github.com/opendoors/notify-relay/internal/model"
)

var (
	ErrMissingData = errors.New("missing required notification data")
)

// SendError is a single-send delivery failure. Err is the provider's error as
// returned, so its text is what the caller sees.
type SendError struct {
	Channel model.Channel
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s notification: %v", e.Channel, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
