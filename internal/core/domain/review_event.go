package domain

import "time"

// ReviewAction identifies the kind of review mutation recorded in the activity log.
type ReviewAction string

const (
	ReviewUpserted ReviewAction = "upserted"
	ReviewDeleted  ReviewAction = "deleted"
)

// ReviewEvent records one successful review mutation.
type ReviewEvent struct {
	ISBN       string       `json:"isbn" bson:"isbn"`
	Username   string       `json:"username" bson:"username"`
	Action     ReviewAction `json:"action" bson:"action"`
	Text       string       `json:"text,omitempty" bson:"text,omitempty"`
	OccurredAt time.Time    `json:"occurred_at" bson:"occurred_at"`
}
