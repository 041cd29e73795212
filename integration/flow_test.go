package integration

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/skillmastery/server/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLifecycle(t *testing.T) {
	ts := NewTestServer(t)

	// 1. Build the chain Dificulty -> Skill, User -> UserSkill -> Goal.
	difID := ts.Create(t, "dificulties", map[string]interface{}{"value": 3})
	skillID := ts.Create(t, "skills", map[string]interface{}{"name": "Go", "description": "Language", "dificultyId": difID})
	userID := ts.Create(t, "users", map[string]interface{}{"firstName": "Ada", "lastName": "Lovelace", "email": UniqueEmail("ada")})
	usID := ts.Create(t, "userskills", map[string]interface{}{"skillId": skillID, "userId": userID})
	goalID := ts.Create(t, "goals", map[string]interface{}{"name": "Ship", "finishDate": "2025-06-30", "userSkillId": usID})

	// 2. Parents in use cannot be deleted.
	for path, id := range map[string]int64{"/api/v1/users/": userID, "/api/v1/skills/": skillID} {
		resp := ts.Do(t, http.MethodDelete, path+strconv.FormatInt(id, 10), nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode, path)
		resp.Body.Close()
	}

	// 3. Edit the goal and read it back through the list.
	resp := ts.Do(t, http.MethodPut, "/api/v1/Goals", map[string]interface{}{"id": goalID, "name": "Ship v2", "finishDate": "2025-07-01", "userSkillId": usID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var goals []map[string]interface{}
	ReadJSON(t, ts.Do(t, http.MethodGet, "/api/v1/goals", nil), &goals)
	require.Len(t, goals, 1)
	assert.Equal(t, "Ship v2", goals[0]["name"])
	assert.Equal(t, "2025-07-01", goals[0]["finishDate"])

	// 4. Tear down child-first.
	for _, step := range []struct {
		path string
		id   int64
	}{
		{"/api/v1/goals/", goalID},
		{"/api/v1/userskills/", usID},
		{"/api/v1/users/", userID},
		{"/api/v1/skills/", skillID},
		{"/api/v1/dificulties/", difID},
	} {
		resp := ts.Do(t, http.MethodDelete, step.path+strconv.FormatInt(step.id, 10), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, step.path)
		resp.Body.Close()
	}
}

func TestListCache_SeesParentEdits(t *testing.T) {
	ts := NewTestServer(t)
	difID := ts.Create(t, "dificulties", map[string]interface{}{"value": 1})
	ts.Create(t, "skills", map[string]interface{}{"name": "Go", "description": "d", "dificultyId": difID})

	var skills []map[string]interface{}
	ReadJSON(t, ts.Do(t, http.MethodGet, "/api/v1/skills", nil), &skills)
	require.Len(t, skills, 1)

	resp := ts.Do(t, http.MethodPut, "/api/v1/dificulties", map[string]interface{}{"id": difID, "value": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	ReadJSON(t, ts.Do(t, http.MethodGet, "/api/v1/skills", nil), &skills)
	dif := skills[0]["dificulty"].(map[string]interface{})
	assert.Equal(t, float64(4), dif["value"])

	_, err := ts.Cache.Get(t.Context(), service.ListCacheKey(service.EntitySkill))
	assert.NoError(t, err, "second read repopulates the cache")
}

func TestUnauthenticated(t *testing.T) {
	ts := NewTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/users")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestAuditTrailAndRetentionJob(t *testing.T) {
	ts := NewTestServer(t)
	ts.Create(t, "dificulties", map[string]interface{}{"value": 2})
	ts.Audit.Stop(t.Context())

	var out struct {
		Count   int                      `json:"count"`
		Entries []map[string]interface{} `json:"entries"`
	}
	ReadJSON(t, ts.Admin(t, http.MethodGet, "/api/admin/audit"), &out)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Dificulty", out.Entries[0]["entity"])
	assert.Equal(t, "create", out.Entries[0]["action"])

	resp := ts.Admin(t, http.MethodPost, "/api/admin/scheduler/audit_retention/run")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
