package social

import (
	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSocialAccount = "SocialAccount"

// Event type constants
const (
	EventTypeAccountConnected    = "AccountConnected"
	EventTypeAccountDisconnected = "AccountDisconnected"
)

// AccountConnectedEvent is published when a platform account is connected
type AccountConnectedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
	Platform  Platform  `json:"platform"`
}

// NewAccountConnectedEvent creates a new AccountConnectedEvent
func NewAccountConnectedEvent(account *SocialAccount) *AccountConnectedEvent {
	return &AccountConnectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountConnected, AggregateTypeSocialAccount, account.ID),
		AccountID:       account.ID,
		Platform:        account.Platform,
	}
}

// AccountDisconnectedEvent is published when a platform account is disconnected
type AccountDisconnectedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
	Platform  Platform  `json:"platform"`
}

// NewAccountDisconnectedEvent creates a new AccountDisconnectedEvent
func NewAccountDisconnectedEvent(account *SocialAccount) *AccountDisconnectedEvent {
	return &AccountDisconnectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountDisconnected, AggregateTypeSocialAccount, account.ID),
		AccountID:       account.ID,
		Platform:        account.Platform,
	}
}
