package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/kursus/internal/bundle/domain"
	bundlerepository "github.com/smallbiznis/kursus/internal/bundle/repository"
	coursedomain "github.com/smallbiznis/kursus/internal/course/domain"
	courserepository "github.com/smallbiznis/kursus/internal/course/repository"
	userdomain "github.com/smallbiznis/kursus/internal/user/domain"
	userrepository "github.com/smallbiznis/kursus/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	svc     domain.Service
	courses coursedomain.Repository
	db      *gorm.DB
	node    *snowflake.Node
}

// One node for the whole package; per-test nodes with the same node ID can
// collide when two tests generate within the same millisecond.
var testNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	testNode = node
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&userdomain.User{},
		&coursedomain.Course{},
		&domain.Bundle{},
	)
	require.NoError(t, err)

	node := testNode

	courses := courserepository.Provide()
	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    bundlerepository.Provide(),
		Courses: courses,
		Users:   userrepository.Provide(),
	})

	return &fixture{svc: svc, courses: courses, db: db, node: node}
}

func (f *fixture) seedCreator(t *testing.T) snowflake.ID {
	t.Helper()
	user := userdomain.User{
		ID:        f.node.Generate(),
		Name:      "Creator",
		Email:     f.node.Generate().String() + "@example.com",
		Metadata:  datatypes.JSONMap{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&user).Error)
	return user.ID
}

func (f *fixture) seedCourse(t *testing.T, creatorID snowflake.ID, price float64, active bool) coursedomain.Course {
	t.Helper()
	course := coursedomain.Course{
		ID:          f.node.Generate(),
		Slug:        "test-course",
		Title:       "Test Course",
		Description: "A course used in tests",
		Price:       price,
		CreatorID:   creatorID,
		Category:    "Programming",
		Level:       "Beginner",
		Active:      active,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&course).Error)
	return course
}

func TestAutoCreateBuildsTierBundles(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	for _, price := range []float64{10, 20, 30, 50, 80, 90} {
		f.seedCourse(t, creatorID, price, true)
	}

	created, err := f.svc.AutoCreate(context.Background(), domain.AutoCreateRequest{
		CreatorID: creatorID.String(),
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, "Basic Pack", created[0].Title)
	assert.InDelta(t, 27.0, created[0].TotalPrice, 1e-9)
	assert.Equal(t, "Premium Pack", created[1].Title)
	assert.InDelta(t, 68.0, created[1].TotalPrice, 1e-9)
	assert.Equal(t, "Exclusive Pack", created[2].Title)
	assert.InDelta(t, 136.0, created[2].TotalPrice, 1e-9)

	for _, bundle := range created {
		assert.NotZero(t, bundle.ID)
		assert.True(t, bundle.Active)

		stored, err := f.svc.GetByID(context.Background(), domain.GetBundleRequest{ID: bundle.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, bundle.TotalPrice, stored.TotalPrice)
	}
}

func TestAutoCreateIgnoresInactiveCourses(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	f.seedCourse(t, creatorID, 10, true)
	f.seedCourse(t, creatorID, 20, true)
	f.seedCourse(t, creatorID, 15, false) // must not join the basic tier

	created, err := f.svc.AutoCreate(context.Background(), domain.AutoCreateRequest{
		CreatorID: creatorID.String(),
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Len(t, created[0].CourseIDs, 2)
	assert.InDelta(t, 27.0, created[0].TotalPrice, 1e-9)
}

func TestAutoCreateRequiresTwoCourses(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)
	f.seedCourse(t, creatorID, 10, true)

	_, err := f.svc.AutoCreate(context.Background(), domain.AutoCreateRequest{
		CreatorID: creatorID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientCatalog)
}

func TestAutoCreateUnknownCreator(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AutoCreate(context.Background(), domain.AutoCreateRequest{
		CreatorID: f.node.Generate().String(),
	})
	assert.ErrorIs(t, err, domain.ErrCreatorNotFound)
}

func TestCreateBundleComputesDiscountedTotal(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)
	c1 := f.seedCourse(t, creatorID, 40, true)
	c2 := f.seedCourse(t, creatorID, 60, true)

	bundle, err := f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Premium Pack",
		CourseIDs: []string{c1.ID.String(), c2.ID.String()},
		CreatorID: creatorID.String(),
		Discount:  25,
	})
	require.NoError(t, err)

	assert.InDelta(t, 75.0, bundle.TotalPrice, 1e-9) // (40+60) * 0.75
	assert.Equal(t, 25.0, bundle.Discount)
	assert.Len(t, bundle.CourseIDs, 2)
}

func TestCreateBundleRejectsForeignMembers(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)
	otherID := f.seedCreator(t)

	own := f.seedCourse(t, creatorID, 40, true)
	foreign := f.seedCourse(t, otherID, 60, true)

	_, err := f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Premium Pack",
		CourseIDs: []string{own.ID.String(), foreign.ID.String()},
		CreatorID: creatorID.String(),
	})

	var memberErr *domain.MemberValidationError
	require.ErrorAs(t, err, &memberErr)
	assert.Equal(t, []string{foreign.ID.String()}, memberErr.Missing)
	assert.ErrorIs(t, err, domain.ErrInvalidCourses)
}

func TestCreateBundleRejectsInactiveMembers(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	active := f.seedCourse(t, creatorID, 40, true)
	inactive := f.seedCourse(t, creatorID, 60, false)

	_, err := f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Basic Pack",
		CourseIDs: []string{active.ID.String(), inactive.ID.String()},
		CreatorID: creatorID.String(),
	})

	var memberErr *domain.MemberValidationError
	require.ErrorAs(t, err, &memberErr)
	assert.Equal(t, []string{inactive.ID.String()}, memberErr.Missing)
}

func TestCreateBundleValidation(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)
	c1 := f.seedCourse(t, creatorID, 10, true)

	_, err := f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Mega Pack",
		CourseIDs: []string{c1.ID.String()},
		CreatorID: creatorID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Basic Pack",
		CourseIDs: []string{c1.ID.String()},
		CreatorID: creatorID.String(),
		Discount:  120,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	_, err = f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Basic Pack",
		CreatorID: creatorID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCourses)
}

func TestStoredBundleKeepsTotalAfterPriceChange(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)
	c1 := f.seedCourse(t, creatorID, 10, true)
	c2 := f.seedCourse(t, creatorID, 20, true)

	bundle, err := f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Basic Pack",
		CourseIDs: []string{c1.ID.String(), c2.ID.String()},
		CreatorID: creatorID.String(),
		Discount:  10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 27.0, bundle.TotalPrice, 1e-9)

	// Repricing a member must not touch the stored bundle.
	c1.Price = 1000
	require.NoError(t, f.courses.Update(context.Background(), f.db, &c1))

	stored, err := f.svc.GetByID(context.Background(), domain.GetBundleRequest{ID: bundle.ID.String()})
	require.NoError(t, err)
	assert.InDelta(t, 27.0, stored.TotalPrice, 1e-9)
}

func TestUpdateBundleRecomputesTotalForNewMembers(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)
	c1 := f.seedCourse(t, creatorID, 10, true)
	c2 := f.seedCourse(t, creatorID, 20, true)
	c3 := f.seedCourse(t, creatorID, 50, true)

	bundle, err := f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Basic Pack",
		CourseIDs: []string{c1.ID.String(), c2.ID.String()},
		CreatorID: creatorID.String(),
		Discount:  10,
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), domain.UpdateBundleRequest{
		ID:        bundle.ID.String(),
		CourseIDs: []string{c1.ID.String(), c3.ID.String()},
	})
	require.NoError(t, err)
	assert.InDelta(t, 54.0, updated.TotalPrice, 1e-9) // (10+50) * 0.9
	assert.Len(t, updated.CourseIDs, 2)
}

func TestDeleteBundleSoftDeletes(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)
	c1 := f.seedCourse(t, creatorID, 10, true)
	c2 := f.seedCourse(t, creatorID, 20, true)

	bundle, err := f.svc.Create(context.Background(), domain.CreateBundleRequest{
		Title:     "Basic Pack",
		CourseIDs: []string{c1.ID.String(), c2.ID.String()},
		CreatorID: creatorID.String(),
	})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), domain.DeleteBundleRequest{ID: bundle.ID.String()})
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), domain.GetBundleRequest{ID: bundle.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(context.Background(), domain.DeleteBundleRequest{ID: bundle.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
