package challenge

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const challengesCollection = "challenges"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository instantiates a Firestore-backed repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Create(ctx context.Context, def Definition) error {
	_, err := r.client.Collection(challengesCollection).Doc(def.ChallengeID).Create(ctx, def)
	if status.Code(err) == codes.AlreadyExists {
		return ErrConflict
	}
	return err
}

func (r *firestoreRepository) GetByID(ctx context.Context, challengeID string) (Definition, error) {
	doc, err := r.client.Collection(challengesCollection).Doc(challengeID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Definition{}, ErrNotFound
	}
	if err != nil {
		return Definition{}, err
	}

	var def Definition
	if err := doc.DataTo(&def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func (r *firestoreRepository) ListByTeacher(ctx context.Context, teacherID string) ([]Definition, error) {
	iter := r.client.Collection(challengesCollection).
		Where("teacherId", "==", teacherID).
		OrderBy("createdDate", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	defs := make([]Definition, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var def Definition
		if err := doc.DataTo(&def); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
