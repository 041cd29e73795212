package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skillmastery/server/api/rest"
	"github.com/skillmastery/server/audit"
	"github.com/skillmastery/server/config"
	"github.com/skillmastery/server/scheduler"
	"github.com/skillmastery/server/service"
	"github.com/skillmastery/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	db      *gorm.DB
	handler http.Handler
	audit   *audit.Service
	sched   *scheduler.Scheduler
}

type serverOption func(*rest.RouterDeps)

func newServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sched := scheduler.New(zap.NewNop())
	t.Cleanup(sched.Stop)

	deps := rest.RouterDeps{
		DB:        db,
		Services:  service.New(db),
		Scheduler: sched,
		Server:    config.ServerConfig{APIVersions: []string{"1"}},
		Logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(&deps)
	}
	if deps.Audit != nil {
		t.Cleanup(func() { deps.Audit.Stop(context.Background()) })
	}
	return &testServer{
		db:      db,
		handler: rest.CaseInsensitive(rest.NewRouter(ctx, deps)),
		audit:   deps.Audit,
		sched:   sched,
	}
}

func (s *testServer) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var r *bytes.Reader
	switch b := body.(type) {
	case nil:
		r = bytes.NewReader(nil)
	case string:
		r = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// seedChain creates a user, dificulty, skill, user skill and goal and
// returns their ids in that order.
func seedChain(t *testing.T, s *testServer) (userID, difID, skillID, usID, goalID float64) {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/users", map[string]interface{}{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userID = decode(t, w)["id"].(float64)

	w = s.do(http.MethodPost, "/api/v1/dificulties", map[string]interface{}{"value": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	difID = decode(t, w)["id"].(float64)

	w = s.do(http.MethodPost, "/api/v1/skills", map[string]interface{}{"name": "A", "description": "B", "dificultyId": difID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	skillID = decode(t, w)["id"].(float64)

	w = s.do(http.MethodPost, "/api/v1/userskills", map[string]interface{}{"skillId": skillID, "userId": userID, "status": false})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	usID = decode(t, w)["id"].(float64)

	w = s.do(http.MethodPost, "/api/v1/goals", map[string]interface{}{"name": "Ship", "finishDate": "2025-01-23", "userSkillId": usID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	goalID = decode(t, w)["id"].(float64)
	return
}

func TestPostSkills_Created(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/v1/dificulties", map[string]interface{}{"value": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/v1/Skills", map[string]interface{}{"name": "A", "description": "B", "dificultyId": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotZero(t, body["id"])
	assert.Equal(t, "A", body["name"])
	assert.Equal(t, "B", body["description"])
	assert.Equal(t, float64(1), body["dificultyId"])
	assert.Equal(t, "/api/v1/skills/1", w.Header().Get("Location"))
}

func TestDeleteGoals_NotFound(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodDelete, "/api/v1/Goals/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, "The specified resource was not found!", body["title"])
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "Goal with id 999 not found", body["detail"])
	assert.NotEmpty(t, body["traceId"])
	assert.NotContains(t, body, "instance")
}

func TestPutUsers_ValidationError(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPut, "/api/v1/Users", map[string]interface{}{"id": 1, "firstName": "", "lastName": "L", "email": "a@b.io"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "One or more validation errors occurred.", body["title"])
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, errs, "firstName")
	assert.Equal(t, []interface{}{"The firstName field is required."}, errs["firstName"])
}

func TestPostUsers_InvalidEmailAndLength(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/v1/users", map[string]interface{}{
		"firstName": strings.Repeat("x", 51), "lastName": "L", "email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "lastName")
}

func TestPost_MalformedJSON(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/v1/users", `{"firstName":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "$")
}

func TestPost_WrongType(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/v1/dificulties", `{"value":"hard"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "value")
}

func TestPostGoal_BadDate(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/v1/goals", map[string]interface{}{"name": "x", "finishDate": "23-01-2025", "userSkillId": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "finishDate")
}

func TestPost_MissingParent404(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/v1/skills", map[string]interface{}{"name": "A", "description": "B", "dificultyId": 5})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Dificulty with id 5 not found", decode(t, w)["detail"])
}

func TestList_EmptyArray(t *testing.T) {
	s := newServer(t)
	for _, path := range []string{"/api/v1/users", "/api/v1/skills", "/api/v1/dificulties", "/api/v1/userskills", "/api/v1/goals"} {
		w := s.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()), path)
	}
}

func TestList_NestedDTOs(t *testing.T) {
	s := newServer(t)
	seedChain(t, s)

	w := s.do(http.MethodGet, "/api/v1/userskills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var links []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Len(t, links, 1)
	assert.Equal(t, "A", links[0]["skill"].(map[string]interface{})["name"])
	assert.Equal(t, "Ada", links[0]["user"].(map[string]interface{})["firstName"])

	w = s.do(http.MethodGet, "/api/v1/goals", nil)
	var goals []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, "2025-01-23", goals[0]["finishDate"])
	assert.NotNil(t, goals[0]["userSkill"])
}

func TestDelete_InUseConflict(t *testing.T) {
	s := newServer(t)
	userID, _, _, _, _ := seedChain(t, s)

	w := s.do(http.MethodDelete, "/api/v1/users/1", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "The specified resource was found but is used in another resource!", body["title"])
	assert.Equal(t, "User with id 1 is used in a classroom", body["detail"])

	w = s.do(http.MethodGet, "/api/v1/users", nil)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, userID, users[0]["id"])
}

func TestDelete_ZeroID(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodDelete, "/api/v1/skills/0", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Skill Id cannot be empty", body["detail"])
	assert.True(t, strings.HasPrefix(body["instance"].(string), "urn:skillmastery:error:"))
}

func TestDelete_NonIntegerID(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodDelete, "/api/v1/goals/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "id")
}

func TestDelete_ReturnsDeletedDTO(t *testing.T) {
	s := newServer(t)
	_, _, _, _, goalID := seedChain(t, s)

	w := s.do(http.MethodDelete, "/api/v1/goals/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, goalID, decode(t, w)["id"])

	w = s.do(http.MethodDelete, "/api/v1/goals/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPut_EditReturnsMerged(t *testing.T) {
	s := newServer(t)
	seedChain(t, s)

	w := s.do(http.MethodPut, "/api/v1/skills", map[string]interface{}{"id": 1, "name": "Go", "description": "Generics", "dificultyId": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Generics", body["description"])
	assert.NotNil(t, body["dificulty"])
}

func TestPut_ZeroIDIsEmptyID(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPut, "/api/v1/dificulties", map[string]interface{}{"value": 3})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Dificulty Id cannot be empty", decode(t, w)["detail"])
}

func TestPut_NotFound(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPut, "/api/v1/users", map[string]interface{}{"id": 8, "firstName": "a", "lastName": "b", "email": "a@b.io"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User with id 8 not found", decode(t, w)["detail"])
}

func TestPost_UntypedErrorIs500Text(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.db.Migrator().DropTable("users"))

	w := s.do(http.MethodPost, "/api/v1/users", map[string]interface{}{"firstName": "a", "lastName": "b", "email": "a@b.io"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Internal server error: "), w.Body.String())
}

func TestList_UntypedErrorIsProblem(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.db.Migrator().DropTable("goals"))

	w := s.do(http.MethodGet, "/api/v1/goals", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "An unexpected error occurred!", body["title"])
	assert.Contains(t, body["detail"], "goals")
}

func TestVersions(t *testing.T) {
	s := newServer(t, func(d *rest.RouterDeps) { d.Server.APIVersions = []string{"1", "2"} })
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v2/users", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v3/users", nil).Code)
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/HEALTH", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestJWT_RequiredWhenConfigured(t *testing.T) {
	s := newServer(t, func(d *rest.RouterDeps) { d.Security.JWTSecret = "secret" })
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/users", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)
}

func TestHeadList_NoBody(t *testing.T) {
	s := newServer(t)
	seedChain(t, s)
	for _, path := range []string{"/api/v1/users", "/api/v1/Skills", "/api/v1/dificulties", "/api/v1/userskills", "/api/v1/goals"} {
		w := s.do(http.MethodHead, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json", path)
	}
}

func TestPostUsers_EmailTooLong(t *testing.T) {
	s := newServer(t)
	email := strings.Repeat("a", 60) + "@" + strings.Repeat("b", 200) + ".io"
	w := s.do(http.MethodPost, "/api/v1/users", map[string]interface{}{"firstName": "F", "lastName": "L", "email": email})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errs := decode(t, w)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The field email must have a maximum length of 254."}, errs["email"])
}

func TestPutUserSkill_OmittedStatusIsFalse(t *testing.T) {
	s := newServer(t)
	userID, _, skillID, usID, _ := seedChain(t, s)

	w := s.do(http.MethodPut, "/api/v1/userskills", map[string]interface{}{"id": usID, "status": true, "skillId": skillID, "userId": userID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["status"])

	// PUT replaces the whole row: a missing boolean is its zero value.
	w = s.do(http.MethodPut, "/api/v1/userskills", map[string]interface{}{"id": usID, "skillId": skillID, "userId": userID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, decode(t, w)["status"])
}

func TestNotAcceptable(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/api/v1/users", nil, "Accept", "text/html")
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/users", nil, "Accept", "application/json")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/health", nil, "Accept", "text/html")
	assert.Equal(t, http.StatusOK, w.Code)
}
