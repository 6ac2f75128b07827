package coinbank

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kriyaConnectAPI/internal/accrual"
)

const aggregatesCollection = "coinAggregates"

type aggregateDoc struct {
	Members   []*accrual.MemberTotals `firestore:"members"`
	UpdatedAt time.Time               `firestore:"updatedAt"`
}

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository instantiates a Firestore-backed repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Get(ctx context.Context, teacherID string) (*Aggregate, error) {
	doc, err := r.client.Collection(aggregatesCollection).Doc(teacherID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &Aggregate{TeacherID: teacherID}, nil
	}
	if err != nil {
		return nil, err
	}

	var data aggregateDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, err
	}
	return &Aggregate{TeacherID: teacherID, Members: data.Members}, nil
}

func (r *firestoreRepository) Save(ctx context.Context, agg *Aggregate) error {
	// The members array is replaced as a whole field; two devices merging
	// the same aggregate concurrently race and the later write drops the
	// earlier one's delta.
	_, err := r.client.Collection(aggregatesCollection).Doc(agg.TeacherID).Set(ctx, map[string]any{
		"members":   agg.Members,
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	return err
}
