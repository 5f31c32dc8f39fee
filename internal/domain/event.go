package domain

import (
	"time"
)

// EventType represents the type of domain event
type EventType int

const (
	EventChainSelected EventType = iota
	EventTokenSelected
	EventDepositAmountSet
	EventDepositClamped
	EventStakeAmountSet
	EventBalancesLoaded
	EventIntentExported
)

// String returns the event name used in logs
func (t EventType) String() string {
	switch t {
	case EventChainSelected:
		return "chain_selected"
	case EventTokenSelected:
		return "token_selected"
	case EventDepositAmountSet:
		return "deposit_amount_set"
	case EventDepositClamped:
		return "deposit_clamped"
	case EventStakeAmountSet:
		return "stake_amount_set"
	case EventBalancesLoaded:
		return "balances_loaded"
	case EventIntentExported:
		return "intent_exported"
	default:
		return "unknown"
	}
}

// Event represents a domain event
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent creates a new domain event
func NewEvent(eventType EventType, data interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// ChainSelectedData contains data for chain selection events
type ChainSelectedData struct {
	Chain ChainKey `json:"chain"`
}

// TokenSelectedData contains data for token selection events.
// An empty Address means the selection was cleared.
type TokenSelectedData struct {
	Chain   ChainKey `json:"chain,omitempty"`
	Address string   `json:"address,omitempty"`
}

// AmountData contains a raw amount as shown to the user
type AmountData struct {
	Amount string `json:"amount"`
	Valid  bool   `json:"valid"`
}

// BalancesLoadedData contains a summary of a loaded balance snapshot
type BalancesLoadedData struct {
	Chains  int `json:"chains"`
	Entries int `json:"entries"`
}

// IntentExportedData contains the location of an exported stake intent
type IntentExportedData struct {
	IntentID string `json:"intent_id"`
	Path     string `json:"path"`
}
