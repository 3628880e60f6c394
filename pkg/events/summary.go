package events

// Summary is a count of the problems in a set of events
type Summary struct {
	ErrorCount int
	WarnCount  int

	Errors []Event

	Full []Event
}
