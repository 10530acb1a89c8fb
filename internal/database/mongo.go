package database

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// dialMongo is the production dialer behind SessionManager.
func dialMongo(ctx context.Context, uri, db string) (Conn, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Println("✅ Connected to MongoDB")
	return &mongoConn{client: client, db: db}, nil
}

type mongoConn struct {
	client *mongo.Client
	db     string
}

func (c *mongoConn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c *mongoConn) Collection(name string) Store {
	return &mongoStore{coll: c.client.Database(c.db).Collection(name)}
}

func (c *mongoConn) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// mongoStore adapts one *mongo.Collection to the Store surface.
type mongoStore struct {
	coll *mongo.Collection
}

func orEmpty(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

func (s *mongoStore) FindOne(ctx context.Context, filter bson.M, out any) error {
	err := s.coll.FindOne(ctx, orEmpty(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocuments
	}
	return err
}

func (s *mongoStore) FindAll(ctx context.Context, filter bson.M, sort bson.D, limit int64, out any) error {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.coll.Find(ctx, orEmpty(filter), opts)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (s *mongoStore) InsertOne(ctx context.Context, doc any) (bson.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return bson.ObjectID{}, err
	}
	id, _ := res.InsertedID.(bson.ObjectID)
	return id, nil
}

func (s *mongoStore) UpdateByID(ctx context.Context, id bson.ObjectID, update bson.M) (UpdateResult, error) {
	res, err := s.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (s *mongoStore) UpdateWhere(ctx context.Context, filter, update bson.M) (UpdateResult, error) {
	res, err := s.coll.UpdateMany(ctx, orEmpty(filter), update)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (s *mongoStore) DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.coll.CountDocuments(ctx, orEmpty(filter))
}

func (s *mongoStore) GroupCountBy(ctx context.Context, field string) ([]GroupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": nil}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var groups []GroupCount
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
