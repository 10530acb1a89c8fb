package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeStore implements database.Store with per-method function hooks. Unset
// hooks return zero values. Every call is recorded on calls.
type fakeStore struct {
	findOne      func(filter bson.M, out any) error
	findAll      func(filter bson.M, sort bson.D, limit int64, out any) error
	insertOne    func(doc any) (bson.ObjectID, error)
	updateByID   func(id bson.ObjectID, update bson.M) (database.UpdateResult, error)
	updateWhere  func(filter, update bson.M) (database.UpdateResult, error)
	deleteByID   func(id bson.ObjectID) (int64, error)
	count        func(filter bson.M) (int64, error)
	groupCountBy func(field string) ([]database.GroupCount, error)

	calls []string
}

func (s *fakeStore) FindOne(_ context.Context, filter bson.M, out any) error {
	s.calls = append(s.calls, "FindOne")
	if s.findOne == nil {
		return database.ErrNoDocuments
	}
	return s.findOne(filter, out)
}

func (s *fakeStore) FindAll(_ context.Context, filter bson.M, sort bson.D, limit int64, out any) error {
	s.calls = append(s.calls, "FindAll")
	if s.findAll == nil {
		return nil
	}
	return s.findAll(filter, sort, limit, out)
}

func (s *fakeStore) InsertOne(_ context.Context, doc any) (bson.ObjectID, error) {
	s.calls = append(s.calls, "InsertOne")
	if s.insertOne == nil {
		return bson.NewObjectID(), nil
	}
	return s.insertOne(doc)
}

func (s *fakeStore) UpdateByID(_ context.Context, id bson.ObjectID, update bson.M) (database.UpdateResult, error) {
	s.calls = append(s.calls, "UpdateByID")
	if s.updateByID == nil {
		return database.UpdateResult{Matched: 1, Modified: 1}, nil
	}
	return s.updateByID(id, update)
}

func (s *fakeStore) UpdateWhere(_ context.Context, filter, update bson.M) (database.UpdateResult, error) {
	s.calls = append(s.calls, "UpdateWhere")
	if s.updateWhere == nil {
		return database.UpdateResult{}, nil
	}
	return s.updateWhere(filter, update)
}

func (s *fakeStore) DeleteByID(_ context.Context, id bson.ObjectID) (int64, error) {
	s.calls = append(s.calls, "DeleteByID")
	if s.deleteByID == nil {
		return 1, nil
	}
	return s.deleteByID(id)
}

func (s *fakeStore) Count(_ context.Context, filter bson.M) (int64, error) {
	s.calls = append(s.calls, "Count")
	if s.count == nil {
		return 0, nil
	}
	return s.count(filter)
}

func (s *fakeStore) GroupCountBy(_ context.Context, field string) ([]database.GroupCount, error) {
	s.calls = append(s.calls, "GroupCountBy")
	if s.groupCountBy == nil {
		return nil, nil
	}
	return s.groupCountBy(field)
}

// fakeProvider hands out fake stores by collection name.
type fakeProvider struct {
	stores map[string]database.Store
	err    error
	calls  []string
}

func (p *fakeProvider) Collection(_ context.Context, name string) (database.Store, error) {
	p.calls = append(p.calls, name)
	if p.err != nil {
		return nil, p.err
	}
	st, ok := p.stores[name]
	if !ok {
		return nil, fmt.Errorf("no fake store for collection %q", name)
	}
	return st, nil
}
