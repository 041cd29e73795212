package model_test

import (
	"testing"
	"time"

	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAutoMigrate_InsertAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := &model.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	require.NoError(t, db.Create(user).Error)
	assert.Greater(t, user.ID, int64(0))
	assert.False(t, user.CreatedAt.IsZero())

	var found model.User
	require.NoError(t, db.First(&found, user.ID).Error)
	assert.Equal(t, "Ada", found.FirstName)

	dif := &model.Dificulty{Value: 3}
	require.NoError(t, db.Create(dif).Error)

	skill := &model.Skill{Name: "Go", Description: "The Go language", DificultyID: dif.ID}
	require.NoError(t, db.Create(skill).Error)
	assert.Greater(t, skill.ID, int64(0))

	us := &model.UserSkill{Status: true, SkillID: skill.ID, UserID: user.ID}
	require.NoError(t, db.Create(us).Error)

	finish := time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC)
	goal := &model.Goal{Name: "Ship it", FinishDate: datatypes.Date(finish), UserSkillID: us.ID}
	require.NoError(t, db.Create(goal).Error)

	var g model.Goal
	require.NoError(t, db.Preload("UserSkill").First(&g, goal.ID).Error)
	assert.Equal(t, "2025-01-23", time.Time(g.FinishDate).Format("2006-01-02"))
	require.NotNil(t, g.UserSkill)
	assert.Equal(t, us.ID, g.UserSkill.ID)

	al := &model.AuditLog{TraceID: "trace-001", Entity: "Goal", EntityID: goal.ID, Action: model.AuditActionCreate}
	require.NoError(t, db.Create(al).Error)
}

func TestOverlay_KeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC)
	dst := &model.User{ID: 7, FirstName: "Old", LastName: "Name", Email: "old@example.com", CreatedAt: created}
	dst.Overlay(&model.User{ID: 99, FirstName: "New", LastName: "Person", Email: "new@example.com"})

	assert.Equal(t, int64(7), dst.ID)
	assert.Equal(t, created, dst.CreatedAt)
	assert.Equal(t, "New", dst.FirstName)
	assert.Equal(t, "Person", dst.LastName)
	assert.Equal(t, "new@example.com", dst.Email)
}

func TestOverlay_ClearsLoadedAssociations(t *testing.T) {
	dst := &model.UserSkill{ID: 1, SkillID: 1, UserID: 1, Skill: &model.Skill{ID: 1}, User: &model.User{ID: 1}}
	dst.Overlay(&model.UserSkill{Status: true, SkillID: 2, UserID: 3})

	assert.True(t, dst.Status)
	assert.Equal(t, int64(2), dst.SkillID)
	assert.Equal(t, int64(3), dst.UserID)
	assert.Nil(t, dst.Skill)
	assert.Nil(t, dst.User)
}
