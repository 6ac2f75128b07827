package progress

import "context"

// Repository is the injectable persistence port for progress documents. Get
// never fails on an absent document; it returns an empty record instead.
// Save merges a single challenge's slice into the user's document, leaving
// other challenges untouched.
type Repository interface {
	Get(ctx context.Context, userID string) (*Record, error)
	Save(ctx context.Context, userID, challengeID string, cp *ChallengeProgress) error
}
