package query

import (
	"testing"

	"brand-portal/internal/auth"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestBuilderClauseJoining(t *testing.T) {
	clause, args := New().
		Where("status = ?", "active").
		Where("user_id = ?", 7).
		Clause()

	assert.Equal(t, "status = ? AND user_id = ?", clause)
	assert.Equal(t, []interface{}{"active", 7}, args)
}

func TestBuilderEmpty(t *testing.T) {
	clause, args := New().Clause()
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestEqSkipsEmptyValues(t *testing.T) {
	clause, args := New().
		Eq("file_type", "").
		Eq("file_type", "image").
		Clause()

	assert.Equal(t, "file_type = ?", clause)
	assert.Equal(t, []interface{}{"image"}, args)
}

func TestEqIDBindsIntegers(t *testing.T) {
	clause, args := New().
		EqID("brand_id", "").
		EqID("brand_id", "42").
		Clause()

	assert.Equal(t, "brand_id = ?", clause)
	assert.Equal(t, []interface{}{uint64(42)}, args)
}

func TestEqIDGarbageMatchesNothing(t *testing.T) {
	clause, args := New().
		EqID("parent_id", "abc").
		Clause()

	assert.Equal(t, "parent_id = ?", clause)
	assert.Equal(t, []interface{}{uint64(0)}, args)
}

func TestSearchBindsOneArgPerColumn(t *testing.T) {
	clause, args := New().
		Search("LoGo", "name", "description").
		Clause()

	assert.Equal(t, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", clause)
	assert.Equal(t, []interface{}{"%logo%", "%logo%"}, args)
}

func TestSearchSkipsEmptyTerm(t *testing.T) {
	clause, _ := New().Search("", "name").Clause()
	assert.Empty(t, clause)
}

func TestVisibleSkipsAdmins(t *testing.T) {
	admin := auth.Identity{UserID: 1, Role: "admin", BrandID: uintPtr(3)}
	clause, _ := New().Visible(admin, "brand_id", "user_id").Clause()
	assert.Empty(t, clause)
}

func TestVisibleSkipsBrandlessUsers(t *testing.T) {
	caller := auth.Identity{UserID: 5, Role: "user"}
	clause, _ := New().Visible(caller, "brand_id", "user_id").Clause()
	assert.Empty(t, clause)
}

func TestVisibleRestrictsBrandUsers(t *testing.T) {
	caller := auth.Identity{UserID: 5, Role: "user", BrandID: uintPtr(3)}
	clause, args := New().Visible(caller, "assets.brand_id", "assets.user_id").Clause()

	assert.Equal(t, "(assets.brand_id = ? OR assets.user_id = ?)", clause)
	assert.Equal(t, []interface{}{uint(3), uint(5)}, args)
}

func TestBuilderArgOrderAcrossClauses(t *testing.T) {
	caller := auth.Identity{UserID: 9, Role: "user", BrandID: uintPtr(2)}
	clause, args := New().
		Where("status = ?", "active").
		Visible(caller, "brand_id", "user_id").
		Search("report", "name").
		Eq("file_type", "document").
		Clause()

	assert.Equal(t,
		"status = ? AND (brand_id = ? OR user_id = ?) AND (LOWER(name) LIKE ?) AND file_type = ?",
		clause)
	assert.Equal(t, []interface{}{"active", uint(2), uint(9), "%report%", "document"}, args)
}
