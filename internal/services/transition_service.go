package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/dtos"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/models"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrInvalidStage    = errors.New("invalid stage name")
	ErrMissingReviewer = errors.New("reviewer name is required")
	ErrMissingNotes    = errors.New("notes are required when failing a candidate")
	ErrNotFound        = errors.New("candidate not found")
	ErrNoOpUpdate      = errors.New("no changes were made to the candidate")
)

const (
	ActionPass = "pass"
	ActionFail = "fail"
)

// TransitionService is the single authority for mutating a candidate's
// status and stage records, and for closing the matching position on a hire.
//
// The target/current stage pair is caller-trusted: both names are checked
// against the stage set, but the engine does not verify that targetStatus is
// the legitimate successor of currentStage. Likewise the read-decide-write
// sequence carries no version token; concurrent transitions on one candidate
// race at the storage layer, bounded by single-document atomicity of the
// final update.
type TransitionService struct {
	candidates *repository.CandidateRepository
	positions  *repository.PositionRepository
	now        func() time.Time
}

func NewTransitionService(candidates *repository.CandidateRepository, positions *repository.PositionRepository) *TransitionService {
	return &TransitionService{
		candidates: candidates,
		positions:  positions,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// TransitionResult reports the primary outcome separately from the
// best-effort position cascade. CascadeWarning is empty unless the candidate
// was hired and the matching position could not be closed.
type TransitionResult struct {
	CandidateID    bson.ObjectID `json:"id"`
	Status         string        `json:"status"`
	CascadeWarning string        `json:"warning,omitempty"`
}

// Transition validates the request, writes the stage outcome and the new
// candidate status as one update, and on a hire closes the first open
// position with the candidate's title.
//
// All validation happens before any I/O; a violation means nothing was
// written. After the update, matched=0 is reported as not-found and
// modified=0 as a no-op so callers never mistake either for a transition.
func (s *TransitionService) Transition(ctx context.Context, id bson.ObjectID, req dtos.TransitionRequest) (*TransitionResult, error) {
	if !models.IsValidStage(req.TargetStatus) || !models.IsValidStage(req.CurrentStage) {
		return nil, ErrInvalidStage
	}
	if strings.TrimSpace(req.Reviewer) == "" {
		return nil, ErrMissingReviewer
	}
	outcome := models.OutcomeFailed
	if req.Action == ActionPass {
		outcome = models.OutcomePassed
	}
	if outcome == models.OutcomeFailed && strings.TrimSpace(req.Notes) == "" {
		return nil, ErrMissingNotes
	}

	candidate, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := s.now()
	hired := req.CurrentStage == models.StageInterview && req.Action == ActionPass

	// Passing CV Review or Cultural Fit advances the candidate but leaves the
	// overall status mid-stage; passing Interview hires outright.
	display := req.TargetStatus
	switch {
	case hired:
		display = models.StageHired
	case req.Action == ActionPass &&
		(req.CurrentStage == models.StageCVReview || req.CurrentStage == models.StageCulturalFit):
		display = models.StatusInProgress
	}

	fields := bson.M{
		"status": display,
		"stages." + req.CurrentStage: models.StageRecord{
			Status:    outcome,
			Reviewer:  req.Reviewer,
			Notes:     req.Notes,
			UpdatedAt: now,
			Completed: true,
		},
	}
	if hired {
		// The Hired stage is never reviewed on its own; it is derived from
		// the Interview outcome under the acting reviewer's name.
		fields["stages."+models.StageHired] = models.StageRecord{
			Status:    models.StageHired,
			Reviewer:  req.Reviewer,
			UpdatedAt: now,
			Completed: true,
		}
	}
	if req.TargetStatus != req.CurrentStage &&
		req.TargetStatus != models.StageFailed && req.TargetStatus != models.StageHired {
		// Seed the next stage so the candidate always has an active record.
		fields["stages."+req.TargetStatus] = models.StageRecord{
			Status:    models.StatusInProgress,
			Reviewer:  models.ReviewerSystem,
			Notes:     "Stage started",
			UpdatedAt: now,
			Completed: false,
		}
	}

	res, err := s.candidates.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if res.Matched == 0 {
		return nil, ErrNotFound
	}
	if res.Modified == 0 {
		return nil, ErrNoOpUpdate
	}

	result := &TransitionResult{CandidateID: id, Status: display}
	if display == models.StageHired {
		if err := s.closeMatchingPosition(ctx, candidate.Position); err != nil {
			// Best effort: the hire stands even when the position stays open.
			log.Printf("⚠️ cascade: could not close position %q after hire: %v", candidate.Position, err)
			result.CascadeWarning = "candidate hired, but the matching position could not be closed"
		}
	}
	return result, nil
}

// closeMatchingPosition closes the first not-closed position whose title
// equals the candidate's position field. No matching position is a clean
// outcome, not a failure.
func (s *TransitionService) closeMatchingPosition(ctx context.Context, title string) error {
	position, err := s.positions.FindOpenByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, database.ErrNoDocuments) {
			return nil
		}
		return err
	}
	res, err := s.positions.Close(ctx, position.ID)
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return errors.New("position disappeared before it could be closed")
	}
	return nil
}
