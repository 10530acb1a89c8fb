package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/models"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/repository"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/services"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeStore serves at most one document (a candidate or a position) and
// records updates. Everything else answers with zero values.
type fakeStore struct {
	candidate *models.Candidate
	position  *models.Position
	updates   []bson.M
	deleted   int64
	updateRes database.UpdateResult
}

func (s *fakeStore) FindOne(_ context.Context, _ bson.M, out any) error {
	switch doc := out.(type) {
	case *models.Candidate:
		if s.candidate == nil {
			return database.ErrNoDocuments
		}
		*doc = *s.candidate
	case *models.Position:
		if s.position == nil {
			return database.ErrNoDocuments
		}
		*doc = *s.position
	}
	return nil
}

func (s *fakeStore) FindAll(context.Context, bson.M, bson.D, int64, any) error { return nil }

func (s *fakeStore) InsertOne(context.Context, any) (bson.ObjectID, error) {
	return bson.NewObjectID(), nil
}

func (s *fakeStore) UpdateByID(_ context.Context, _ bson.ObjectID, update bson.M) (database.UpdateResult, error) {
	s.updates = append(s.updates, update)
	return s.updateRes, nil
}

func (s *fakeStore) UpdateWhere(context.Context, bson.M, bson.M) (database.UpdateResult, error) {
	return database.UpdateResult{}, nil
}

func (s *fakeStore) DeleteByID(context.Context, bson.ObjectID) (int64, error) {
	return s.deleted, nil
}

func (s *fakeStore) Count(context.Context, bson.M) (int64, error) { return 0, nil }

func (s *fakeStore) GroupCountBy(context.Context, string) ([]database.GroupCount, error) {
	return nil, nil
}

type fakeProvider struct {
	stores map[string]database.Store
}

func (p *fakeProvider) Collection(_ context.Context, name string) (database.Store, error) {
	return p.stores[name], nil
}

func newTestRouter(candidates, positions *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	provider := &fakeProvider{stores: map[string]database.Store{
		"candidates": candidates,
		"positions":  positions,
	}}
	candidateRepo := repository.NewCandidateRepository(provider)
	positionRepo := repository.NewPositionRepository(provider)
	handler := NewCandidateHandler(candidateRepo, services.NewTransitionService(candidateRepo, positionRepo))

	r := gin.New()
	r.PATCH("/api/v1/candidates/:id", handler.UpdateStatus)
	r.DELETE("/api/v1/candidates/:id", handler.Delete)
	return r
}

func patchCandidate(t *testing.T, r *gin.Engine, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/candidates/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const transitionBody = `{"status":"Hired","currentStage":"Interview","reviewer":"Alice","action":"pass"}`

func TestUpdateStatus_InvalidIDFormat(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeStore{})
	w := patchCandidate(t, r, "not-a-hex-id", transitionBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateStatus_UnknownCandidate(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeStore{})
	w := patchCandidate(t, r, bson.NewObjectID().Hex(), transitionBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateStatus_InvalidStage(t *testing.T) {
	candidate := &models.Candidate{ID: bson.NewObjectID(), Status: models.StageInterview}
	r := newTestRouter(&fakeStore{candidate: candidate}, &fakeStore{})

	body := `{"status":"Onboarding","currentStage":"Interview","reviewer":"Alice","action":"pass"}`
	w := patchCandidate(t, r, candidate.ID.Hex(), body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateStatus_HireClosesPosition(t *testing.T) {
	candidate := &models.Candidate{ID: bson.NewObjectID(), Position: "Backend Engineer", Status: models.StageInterview}
	candidates := &fakeStore{candidate: candidate, updateRes: database.UpdateResult{Matched: 1, Modified: 1}}
	positions := &fakeStore{
		position:  &models.Position{ID: bson.NewObjectID(), Title: "Backend Engineer", Status: models.PositionOpen},
		updateRes: database.UpdateResult{Matched: 1, Modified: 1},
	}

	r := newTestRouter(candidates, positions)
	w := patchCandidate(t, r, candidate.ID.Hex(), transitionBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["status"] != models.StageHired {
		t.Fatalf("expected Hired status in response, got %v", resp)
	}
	if _, ok := resp["warning"]; ok {
		t.Fatalf("expected no cascade warning, got %v", resp)
	}
	if len(positions.updates) != 1 {
		t.Fatalf("expected exactly one position update, got %d", len(positions.updates))
	}
}

func TestUpdateStatus_NoOpIsRejected(t *testing.T) {
	candidate := &models.Candidate{ID: bson.NewObjectID(), Status: models.StageInterview}
	candidates := &fakeStore{candidate: candidate, updateRes: database.UpdateResult{Matched: 1, Modified: 0}}
	r := newTestRouter(candidates, &fakeStore{position: &models.Position{}})

	w := patchCandidate(t, r, candidate.ID.Hex(), transitionBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a no-op transition, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDelete_NotFound(t *testing.T) {
	r := newTestRouter(&fakeStore{deleted: 0}, &fakeStore{})
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/candidates/"+bson.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
