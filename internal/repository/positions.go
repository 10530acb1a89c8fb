package repository

import (
	"context"

	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const positionsCollection = "positions"

// PositionRepository is the typed surface over the positions collection.
type PositionRepository struct {
	sessions database.CollectionProvider
}

func NewPositionRepository(sessions database.CollectionProvider) *PositionRepository {
	return &PositionRepository{sessions: sessions}
}

func (r *PositionRepository) store(ctx context.Context) (database.Store, error) {
	return r.sessions.Collection(ctx, positionsCollection)
}

func (r *PositionRepository) FindAll(ctx context.Context) ([]models.Position, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	var positions []models.Position
	if err := st.FindAll(ctx, nil, createdAtDesc, 0, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *PositionRepository) Recent(ctx context.Context, n int64) ([]models.Position, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	var positions []models.Position
	if err := st.FindAll(ctx, nil, createdAtDesc, n, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// FindOpenByTitle resolves the loose candidate.position reference at hire
// time: any position with the same title that is not yet closed. First match
// wins; duplicate titles carry no tie-break guarantee.
func (r *PositionRepository) FindOpenByTitle(ctx context.Context, title string) (*models.Position, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	var position models.Position
	filter := bson.M{"title": title, "status": bson.M{"$ne": models.PositionClosed}}
	if err := st.FindOne(ctx, filter, &position); err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *PositionRepository) Insert(ctx context.Context, position *models.Position) (bson.ObjectID, error) {
	st, err := r.store(ctx)
	if err != nil {
		return bson.ObjectID{}, err
	}
	return st.InsertOne(ctx, position)
}

func (r *PositionRepository) UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.M) (database.UpdateResult, error) {
	st, err := r.store(ctx)
	if err != nil {
		return database.UpdateResult{}, err
	}
	return st.UpdateByID(ctx, id, bson.M{"$set": fields})
}

// Close marks a position filled.
func (r *PositionRepository) Close(ctx context.Context, id bson.ObjectID) (database.UpdateResult, error) {
	return r.UpdateFields(ctx, id, bson.M{"status": models.PositionClosed})
}

func (r *PositionRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
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

func (r *PositionRepository) CountAll(ctx context.Context) (int64, error) {
	st, err := r.store(ctx)
	if err != nil {
		return 0, err
	}
	return st.Count(ctx, nil)
}

func (r *PositionRepository) CountWhere(ctx context.Context, field, value string) (int64, error) {
	st, err := r.store(ctx)
	if err != nil {
		return 0, err
	}
	return st.Count(ctx, bson.M{field: value})
}

func (r *PositionRepository) GroupCountBy(ctx context.Context, field string) ([]database.GroupCount, error) {
	st, err := r.store(ctx)
	if err != nil {
		return nil, err
	}
	return st.GroupCountBy(ctx, field)
}
