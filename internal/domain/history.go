package domain

import "time"

// HistoryRecord is one routed command in the audit log.
type HistoryRecord struct {
	ID        string
	Timestamp time.Time
	Input     string
	Intent    IntentType
	Subtype   ActionSubtype
	Provider  string
	Response  string
	Succeeded bool
}
