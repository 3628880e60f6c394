package build

import (
	"github.com/olimci/mdpages/pkg/events"
)

func defaultOptions() *Options {
	return &Options{
		converter: nil,
		handler:   events.NewNoopHandler(),
	}
}

type Options struct {
	converter Converter
	handler   events.Handler
}

func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type Option func(*Options)

// WithConverter replaces the goldmark converter
func WithConverter(c Converter) Option {
	return func(o *Options) {
		o.converter = c
	}
}

// WithEventHandler receives progress events
func WithEventHandler(h events.Handler) Option {
	return func(o *Options) {
		if h != nil {
			o.handler = h
		}
	}
}
