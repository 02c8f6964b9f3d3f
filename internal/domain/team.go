package domain

import "time"

// Team is a group of users working on shared tasks. OwnerID references
// exactly one user; the stored member set never contains the owner, but
// effective membership checks treat the owner as a member.
type Team struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamWithOwner pairs a team with its owner's public fields. Returned by
// user-scoped team listings.
type TeamWithOwner struct {
	Team
	Owner UserSummary
}

// TeamInfo is the enriched read model: the team plus owner and members
// projected down to public profile fields.
type TeamInfo struct {
	Team
	Owner   MemberProfile
	Members []MemberProfile
}
