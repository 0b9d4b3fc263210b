package partners

import (
	"testing"

	"github.com/anoixa/content-hub/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func project(id uint) *models.Project {
	return &models.Project{Model: gorm.Model{ID: id}}
}

// TestReconcile_FillsLegacyFromProjects 多关联非空时补齐旧引用
func TestReconcile_FillsLegacyFromProjects(t *testing.T) {
	p := &models.Partner{
		Name:     "Acme",
		Projects: []*models.Project{project(3), project(7)},
	}

	changed := Reconcile(p)

	assert.True(t, changed)
	require.NotNil(t, p.LegacyProjectID)
	assert.Equal(t, uint(3), *p.LegacyProjectID)
}

// TestReconcile_AddsLegacyToProjects 旧引用不在多关联中时补进去
func TestReconcile_AddsLegacyToProjects(t *testing.T) {
	legacyID := uint(5)
	p := &models.Partner{
		Name:            "Acme",
		LegacyProjectID: &legacyID,
		Projects:        []*models.Project{project(1), project(2)},
	}

	changed := Reconcile(p)

	assert.True(t, changed)
	require.Len(t, p.Projects, 3)
	assert.Equal(t, uint(5), p.Projects[2].ID)
}

// TestReconcile_ConsistentStateUntouched 已一致的状态不做任何修改
func TestReconcile_ConsistentStateUntouched(t *testing.T) {
	legacyID := uint(2)
	p := &models.Partner{
		Name:            "Acme",
		LegacyProjectID: &legacyID,
		Projects:        []*models.Project{project(1), project(2)},
	}

	assert.False(t, Reconcile(p))
	assert.Len(t, p.Projects, 2)
	assert.Equal(t, uint(2), *p.LegacyProjectID)
}

// TestReconcile_EmptyPartner 两套关联都为空时什么都不发生
func TestReconcile_EmptyPartner(t *testing.T) {
	p := &models.Partner{Name: "Acme"}

	assert.False(t, Reconcile(p))
	assert.Nil(t, p.LegacyProjectID)
	assert.Empty(t, p.Projects)

	assert.False(t, Reconcile(nil))
}

// TestReconcile_SparseProjectSlice 多关联切片里的空元素被跳过，不会崩溃
func TestReconcile_SparseProjectSlice(t *testing.T) {
	p := &models.Partner{
		Name:     "Acme",
		Projects: []*models.Project{nil, project(5)},
	}

	changed := Reconcile(p)

	assert.True(t, changed)
	require.NotNil(t, p.LegacyProjectID)
	assert.Equal(t, uint(5), *p.LegacyProjectID)

	// 全是空元素等价于空集合
	allNil := &models.Partner{Projects: []*models.Project{nil, nil}}
	assert.False(t, Reconcile(allNil))
	assert.Nil(t, allNil.LegacyProjectID)
}

// TestReconcile_Idempotent 连续调用两次第二次不再变化
func TestReconcile_Idempotent(t *testing.T) {
	tests := []struct {
		name    string
		partner func() *models.Partner
	}{
		{
			name: "fill legacy",
			partner: func() *models.Partner {
				return &models.Partner{Projects: []*models.Project{project(4)}}
			},
		},
		{
			name: "add legacy to projects",
			partner: func() *models.Partner {
				id := uint(9)
				return &models.Partner{
					LegacyProjectID: &id,
					Projects:        []*models.Project{project(1)},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.partner()
			assert.True(t, Reconcile(p))
			assert.False(t, Reconcile(p), "second call must be a no-op")
		})
	}
}
