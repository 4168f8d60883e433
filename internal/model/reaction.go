package model

import "time"

// Reaction edge kinds as stored and as returned by the API.
const (
	ReactionLikes    = "LIKES"
	ReactionDislikes = "DISLIKES"
)

// Reaction is a directed edge from a user to an idea. At most one reaction
// exists per (user, idea) pair; reacting again replaces the old edge.
type Reaction struct {
	UserID    string    `json:"userId"`
	IdeaID    string    `json:"ideaId"`
	Kind      string    `json:"type"`
	Agreement float64   `json:"agreement"`
	CreatedAt time.Time `json:"createdAt"`
}
