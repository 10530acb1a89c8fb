package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Pipeline stages in order. Hired and Failed are terminal; Failed is
// reachable from any non-terminal stage.
const (
	StageNew         = "New"
	StageCVReview    = "CV Review"
	StageCulturalFit = "Cultural Fit"
	StageInterview   = "Interview"
	StageHired       = "Hired"
	StageFailed      = "Failed"
)

// StatusInProgress is the candidate-level status shown while a candidate is
// mid-pipeline. It is never a stage key of its own.
const StatusInProgress = "In Progress"

// Stage record outcomes.
const (
	OutcomePassed = "Passed"
	OutcomeFailed = "Failed"
)

// ReviewerSystem marks stage records written automatically rather than by a human.
const ReviewerSystem = "System"

const (
	PositionOpen   = "Open"
	PositionClosed = "closed"
)

// ValidStages is the closed set of stage names accepted in transition requests.
var ValidStages = []string{StageNew, StageCVReview, StageCulturalFit, StageInterview, StageHired, StageFailed}

func IsValidStage(s string) bool {
	for _, v := range ValidStages {
		if s == v {
			return true
		}
	}
	return false
}

// StageRecord is the audit entry for a candidate at one pipeline stage,
// embedded in the candidate document under stages.<stage name>.
type StageRecord struct {
	Status    string    `bson:"status" json:"status"`
	Reviewer  string    `bson:"reviewer" json:"reviewer"`
	Notes     string    `bson:"notes" json:"notes"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	Completed bool      `bson:"completed" json:"completed"`
}

// InitialStageRecord is the record a candidate starts the New stage with.
// The legacy-document backfill writes the same record.
func InitialStageRecord(now time.Time) StageRecord {
	return StageRecord{
		Status:    StatusInProgress,
		Reviewer:  ReviewerSystem,
		Notes:     "Initial status",
		UpdatedAt: now,
		Completed: false,
	}
}

type Candidate struct {
	ID            bson.ObjectID          `bson:"_id,omitempty" json:"id"`
	Name          string                 `bson:"name" json:"name"`
	Email         string                 `bson:"email" json:"email"`
	Source        string                 `bson:"source" json:"source"`
	SourceContact string                 `bson:"sourceContact,omitempty" json:"sourceContact,omitempty"`
	Position      string                 `bson:"position" json:"position"`
	RequestedPay  *float64               `bson:"requestedPay,omitempty" json:"requestedPay,omitempty"`
	Status        string                 `bson:"status" json:"status"`
	Stages        map[string]StageRecord `bson:"stages" json:"stages"`
	CreatedAt     time.Time              `bson:"createdAt" json:"createdAt"`
}

type Position struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string        `bson:"title" json:"title"`
	Department    string        `bson:"department" json:"department"`
	HiringManager string        `bson:"hiringManager" json:"hiringManager"`
	Timeline      string        `bson:"timeline" json:"timeline"`
	Status        string        `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}
