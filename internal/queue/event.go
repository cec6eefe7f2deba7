// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// Queue names for entity events.
const (
	RatingCreatedQueue         = "rating.created"
	RecommendationCreatedQueue = "recommendation.created"
)

// EntityEvent is published after a rating or recommendation is written. It
// carries enough for the recommender pipeline to react without querying the
// primary store.
type EntityEvent struct {
	RecordID  string  `json:"record_id"`
	UserID    string  `json:"user_id"`
	MovieID   string  `json:"movie_id"`
	Score     float64 `json:"score,omitempty"` // ratings only
	CreatedAt string  `json:"created_at"`
}
