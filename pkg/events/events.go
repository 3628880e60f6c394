package events

type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "event"
	}
}

// Event is a single report from a render run
type Event struct {
	Level   Level
	Source  string
	Message string
	Error   error
}

type Handler interface {
	Handle(event Event)
}
