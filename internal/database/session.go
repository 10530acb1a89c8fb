package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/config"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Conn is one live client session against the document store.
type Conn interface {
	Ping(ctx context.Context) error
	Collection(name string) Store
	Disconnect(ctx context.Context) error
}

// SessionManager owns the one shared store session. It is created once at
// process start and passed by reference to every repository.
//
// Lifecycle rules:
//   - the session is dialed lazily on first use;
//   - concurrent first callers share a single in-flight dial;
//   - a cached session is pinged before reuse and dropped when the ping fails;
//   - any store operation failing at the transport level drops the session so
//     the next call redials. No operation is retried here; callers decide
//     whether to retry the whole logical operation.
type SessionManager struct {
	cfg  *config.Config
	dial func(ctx context.Context, uri, db string) (Conn, error)

	mu   sync.Mutex
	conn Conn

	connecting singleflight.Group
}

func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{cfg: cfg, dial: dialMongo}
}

// Collection returns a live Store for the named collection, dialing the
// shared session first if needed.
func (m *SessionManager) Collection(ctx context.Context, name string) (Store, error) {
	if name == "" {
		return nil, errors.New("database: collection name is empty")
	}
	if m.cfg.BuildPhase {
		return nil, ErrBuildPhaseSkip
	}

	conn := m.current()
	if conn == nil {
		v, err, _ := m.connecting.Do("connect", func() (any, error) {
			c, err := m.dial(ctx, m.cfg.MongoURI, m.cfg.Database)
			if err != nil {
				return nil, err
			}
			m.mu.Lock()
			m.conn = c
			m.mu.Unlock()
			return c, nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}
		conn = v.(Conn)
	}

	if err := conn.Ping(ctx); err != nil {
		m.invalidate(conn)
		return nil, fmt.Errorf("%w: ping failed: %v", ErrConnection, err)
	}

	return &sessionStore{Store: conn.Collection(name), mgr: m, conn: conn}, nil
}

func (m *SessionManager) current() Conn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

// invalidate drops the cached session if it is still the one the caller saw.
// A session dialed after the failure is left alone.
func (m *SessionManager) invalidate(conn Conn) {
	m.mu.Lock()
	if m.conn != conn {
		m.mu.Unlock()
		return
	}
	m.conn = nil
	m.mu.Unlock()

	log.Println("❌ MongoDB session invalidated, next call will reconnect")
	if err := conn.Disconnect(context.Background()); err != nil {
		log.Println("Error closing invalidated MongoDB session:", err)
	}
}

// sessionStore routes every store failure through the manager so transport
// errors heal the shared session. Not-found is a data answer, not a
// transport failure, and leaves the session alone.
type sessionStore struct {
	Store
	mgr  *SessionManager
	conn Conn
}

func (s *sessionStore) observe(err error) error {
	if err != nil && !errors.Is(err, ErrNoDocuments) {
		s.mgr.invalidate(s.conn)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return err
}

func (s *sessionStore) FindOne(ctx context.Context, filter bson.M, out any) error {
	return s.observe(s.Store.FindOne(ctx, filter, out))
}

func (s *sessionStore) FindAll(ctx context.Context, filter bson.M, sort bson.D, limit int64, out any) error {
	return s.observe(s.Store.FindAll(ctx, filter, sort, limit, out))
}

func (s *sessionStore) InsertOne(ctx context.Context, doc any) (bson.ObjectID, error) {
	id, err := s.Store.InsertOne(ctx, doc)
	return id, s.observe(err)
}

func (s *sessionStore) UpdateByID(ctx context.Context, id bson.ObjectID, update bson.M) (UpdateResult, error) {
	res, err := s.Store.UpdateByID(ctx, id, update)
	return res, s.observe(err)
}

func (s *sessionStore) UpdateWhere(ctx context.Context, filter, update bson.M) (UpdateResult, error) {
	res, err := s.Store.UpdateWhere(ctx, filter, update)
	return res, s.observe(err)
}

func (s *sessionStore) DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error) {
	n, err := s.Store.DeleteByID(ctx, id)
	return n, s.observe(err)
}

func (s *sessionStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.Store.Count(ctx, filter)
	return n, s.observe(err)
}

func (s *sessionStore) GroupCountBy(ctx context.Context, field string) ([]GroupCount, error) {
	groups, err := s.Store.GroupCountBy(ctx, field)
	return groups, s.observe(err)
}
