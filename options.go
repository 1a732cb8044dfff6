package monome

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type settings struct {
	orientation  Orientation
	opener       Opener
	logger       zerolog.Logger
	pollInterval time.Duration
}

func newSettings(options ...Option) *settings {
	var s = &settings{
		orientation:  MustOrientation(Rotate0),
		opener:       SerialOpener(DefaultSerialConfig),
		logger:       log.Logger,
		pollInterval: defaultPollInterval,
	}

	for _, opt := range options {
		opt(s)
	}
	return s
}

type Option func(*settings)

// PollInterval sets how often a listening connection polls the device for events.
func PollInterval(interval time.Duration) Option {
	return func(s *settings) {
		s.pollInterval = interval
	}
}

// WithOrientation binds the orientation the device is mounted in.
func WithOrientation(o Orientation) Option {
	return func(s *settings) {
		s.orientation = o
	}
}

// WithOpener replaces the serial port opener, e.g. to talk to a device over something else.
func WithOpener(op Opener) Option {
	return func(s *settings) {
		s.opener = op
	}
}

// WithLogger sets the logger. The default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}
