package cmd

import (
	"fmt"

	"github.com/olimci/mdpages/pkg/events"
)

type eventCounts struct {
	Debug int
	Info  int
	Warn  int
	Error int
}

func countEvents(eventsList []events.Event) eventCounts {
	var counts eventCounts
	for _, event := range eventsList {
		switch event.Level {
		case events.Debug:
			counts.Debug++
		case events.Info:
			counts.Info++
		case events.Warn:
			counts.Warn++
		case events.Error:
			counts.Error++
		}
	}
	return counts
}

// formatSummary describes a rebuild that produced warnings or errors, and is empty otherwise
func formatSummary(summary *events.Summary) string {
	if !hasSummaryEvents(summary) {
		return ""
	}

	counts := countEvents(summary.Full)
	return fmt.Sprintf(
		"%d events (debug %d, info %d, warn %d, error %d)",
		len(summary.Full),
		counts.Debug,
		counts.Info,
		counts.Warn,
		counts.Error,
	)
}

func hasSummaryEvents(summary *events.Summary) bool {
	return summary != nil && summary.ErrorCount+summary.WarnCount > 0
}
