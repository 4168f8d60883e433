package model

import "time"

// Idea represents an idea in the database. SourceID and PosterID are
// optional references.
type Idea struct {
	ID          string    `json:"ideaId"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	SourceID    *string   `json:"sourceId,omitempty"`
	PosterID    *string   `json:"posterId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IdeaDetails is an idea with optional reaction aggregates. The pointer
// fields are nil when the corresponding detail was not requested or does not
// exist, and serialize as null.
type IdeaDetails struct {
	Idea
	AllReactions  *int64   `json:"allReactions,omitempty"`
	AllAgreement  *float64 `json:"allAgreement,omitempty"`
	UserReaction  *string  `json:"userReaction,omitempty"`
	UserAgreement *float64 `json:"userAgreement,omitempty"`
}

// ReactionSummary is the reactions-only view of an idea.
type ReactionSummary struct {
	UserReaction  *string  `json:"userReaction"`
	UserAgreement *float64 `json:"userAgreement"`
	AllReactions  int64    `json:"allReactions"`
	AllAgreement  float64  `json:"allAgreement"`
}

// RankedIdea is an idea with its aggregate agreement score: the sum of
// agreement scalars across all LIKES reactions. Dislikes carry no scalar
// and are only counted.
type RankedIdea struct {
	Idea
	Score    float64 `json:"score"`
	Likes    int64   `json:"likes"`
	Dislikes int64   `json:"dislikes"`
}

// PostIdeaRequest represents an idea creation request.
type PostIdeaRequest struct {
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description" validate:"required"`
	SourceID    string `json:"sourceId" validate:"omitempty,uuid4"`
}

// ReactRequest represents a reaction to an idea. Agreement is only
// meaningful for likes and may be negative.
type ReactRequest struct {
	Type      string  `json:"type" validate:"required,oneof=like dislike"`
	Agreement float64 `json:"agreement"`
}
