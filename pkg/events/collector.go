package events

import "slices"

// NewCollector records every event before passing it on to handler, which may be nil
func NewCollector(handler Handler) *Collector {
	if handler == nil {
		handler = NewNoopHandler()
	}
	return &Collector{
		Events:  make([]Event, 0),
		handler: handler,
	}
}

type Collector struct {
	Events  []Event
	handler Handler
}

func (c *Collector) Handle(event Event) {
	c.Events = append(c.Events, event)
	c.handler.Handle(event)
}

func (c *Collector) AtLevel(level Level) []Event {
	out := make([]Event, 0)
	for _, event := range c.Events {
		if event.Level >= level {
			out = append(out, event)
		}
	}
	return out
}

// HasLevel reports whether any event at or above level was collected
func (c *Collector) HasLevel(level Level) bool {
	for _, event := range c.Events {
		if event.Level >= level {
			return true
		}
	}

	return false
}

func (c *Collector) MaxLevel() Level {
	max := Level(0)
	for _, event := range c.Events {
		if event.Level > max {
			max = event.Level
		}
	}
	return max
}

func (c *Collector) Clear() {
	c.Events = make([]Event, 0)
}

func (c *Collector) Summary() *Summary {
	out := new(Summary)

	for _, event := range c.Events {
		switch event.Level {
		case Error:
			out.ErrorCount++
			out.Errors = append(out.Errors, event)
		case Warn:
			out.WarnCount++
		}
	}

	out.Full = slices.Clone(c.Events)

	return out
}
