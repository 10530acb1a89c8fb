package repository

import (
	"context"
	"log"
	"time"

	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const candidatesCollection = "candidates"

// createdAtDesc sorts newest first, the order every listing endpoint uses.
var createdAtDesc = bson.D{{Key: "createdAt", Value: -1}}

// timeNow is swapped out by tests that assert on written timestamps.
var timeNow = func() time.Time { return time.Now().UTC() }

// CandidateRepository is the typed surface over the candidates collection.
type CandidateRepository struct {
	sessions database.CollectionProvider
}

func NewCandidateRepository(sessions database.CollectionProvider) *CandidateRepository {
	return &CandidateRepository{sessions: sessions}
}

func (r *CandidateRepository) store(ctx context.Context) (database.Store, error) {
	return r.sessions.Collection(ctx, candidatesCollection)
}

func (r *CandidateRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Candidate, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	var candidate models.Candidate
	if err := st.FindOne(ctx, bson.M{"_id": id}, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// FindAll lists every candidate, newest first. It first runs the idempotent
// backfill for legacy documents created before the stages field existed.
func (r *CandidateRepository) FindAll(ctx context.Context) ([]models.Candidate, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	r.backfillStages(ctx, st)

	var candidates []models.Candidate
	if err := st.FindAll(ctx, nil, createdAtDesc, 0, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// Recent returns the n newest candidates for the dashboard activity feed.
func (r *CandidateRepository) Recent(ctx context.Context, n int64) ([]models.Candidate, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	var candidates []models.Candidate
	if err := st.FindAll(ctx, nil, createdAtDesc, n, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *CandidateRepository) Insert(ctx context.Context, candidate *models.Candidate) (bson.ObjectID, error) {
	st, err := r.store(ctx)
	if err != nil {
		return bson.ObjectID{}, err
	}
	return st.InsertOne(ctx, candidate)
}

// UpdateFields applies a partial $set update and reports matched and
// modified counts separately so callers can tell not-found from no-op.
func (r *CandidateRepository) UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.M) (database.UpdateResult, error) {
	st, err := r.store(ctx)
	if err != nil {
		return database.UpdateResult{}, err
	}
	return st.UpdateByID(ctx, id, bson.M{"$set": fields})
}

// DeleteByID reports not-found through the boolean instead of an error, so
// deleting an already-deleted candidate stays idempotent for callers.
func (r *CandidateRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	st, err := r.store(ctx)
	if err != nil {
		return false, err
	}
	n, err := st.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CandidateRepository) CountAll(ctx context.Context) (int64, error) {
	st, err := r.store(ctx)
	if err != nil {
		return 0, err
	}
	return st.Count(ctx, nil)
}

func (r *CandidateRepository) CountWhere(ctx context.Context, field, value string) (int64, error) {
	st, err := r.store(ctx)
	if err != nil {
		return 0, err
	}
	return st.Count(ctx, bson.M{field: value})
}

func (r *CandidateRepository) GroupCountBy(ctx context.Context, field string) ([]database.GroupCount, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	return st.GroupCountBy(ctx, field)
}

// backfillStages seeds a New stage record on candidates that predate the
// stages field. Matching on $exists keeps it a no-op on every later read.
// Failures only log; listing still works without the repair.
func (r *CandidateRepository) backfillStages(ctx context.Context, st database.Store) {
	res, err := st.UpdateWhere(ctx,
		bson.M{"stages": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"stages": bson.M{models.StageNew: models.InitialStageRecord(timeNow())}}},
	)
	if err != nil {
		log.Println("Candidate stages backfill error:", err)
		return
	}
	if res.Modified > 0 {
		log.Printf("Backfilled stages field on %d candidates", res.Modified)
	}
}
