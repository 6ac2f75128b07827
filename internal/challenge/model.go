package challenge

import "time"

// Definition is a teacher-created recurring practice. Immutable after
// creation except through a teacher edit.
type Definition struct {
	ChallengeID       string    `json:"challenge_id" firestore:"challengeId"`
	ChallengeName     string    `json:"challenge_name" firestore:"challengeName"`
	ChallengeDuration int       `json:"challenge_duration" firestore:"challengeDuration"`
	CreatedDate       time.Time `json:"created_date" firestore:"createdDate"`
	TeacherID         string    `json:"teacher_id" firestore:"teacherId"`
}

type CreateChallengeRequest struct {
	ChallengeName     string `json:"challenge_name" validate:"required"`
	ChallengeDuration int    `json:"challenge_duration" validate:"required,min=1"`
}
