package progress

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const progressCollection = "userChallengeProgress"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository instantiates a Firestore-backed repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Get(ctx context.Context, userID string) (*Record, error) {
	doc, err := r.client.Collection(progressCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &Record{UserID: userID, Challenges: make(map[string]*ChallengeProgress)}, nil
	}
	if err != nil {
		return nil, err
	}

	challenges := make(map[string]*ChallengeProgress)
	if err := doc.DataTo(&challenges); err != nil {
		return nil, err
	}
	return &Record{UserID: userID, Challenges: challenges}, nil
}

func (r *firestoreRepository) Save(ctx context.Context, userID, challengeID string, cp *ChallengeProgress) error {
	// Merge-write a single challenge field; no transaction wraps the
	// preceding read, so concurrent writers of the same challenge race and
	// the last write wins.
	_, err := r.client.Collection(progressCollection).Doc(userID).Set(ctx, map[string]any{
		challengeID: cp,
	}, firestore.MergeAll)
	return err
}
