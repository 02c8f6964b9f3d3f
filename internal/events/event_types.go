package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTeamCreated   EventType = "team_created"
	EventMemberAdded   EventType = "member_added"
	EventMemberRemoved EventType = "member_removed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TeamID    string      `json:"team_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MembershipPayload describes a membership change for notification handlers.
type MembershipPayload struct {
	UserID   string `json:"user_id"`
	TeamName string `json:"team_name"`
}

// TeamCreatedPayload payload.
type TeamCreatedPayload struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}
