package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/kursus/internal/course/domain"
	courserepository "github.com/smallbiznis/kursus/internal/course/repository"
	userdomain "github.com/smallbiznis/kursus/internal/user/domain"
	userrepository "github.com/smallbiznis/kursus/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var testNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(2)
	if err != nil {
		panic(err)
	}
	testNode = node
}

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&userdomain.User{},
		&domain.Course{},
	)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: testNode,
		Repo:  courserepository.Provide(),
		Users: userrepository.Provide(),
	})

	return &fixture{svc: svc, db: db, node: testNode}
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

func validCreateRequest(creatorID snowflake.ID) domain.CreateCourseRequest {
	return domain.CreateCourseRequest{
		Title:       "Go for Beginners",
		Description: "An introduction to the Go programming language.",
		Price:       49.99,
		CreatorID:   creatorID.String(),
		Category:    "Programming",
		Level:       "Beginner",
	}
}

func TestCreateCourse(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	course, err := f.svc.Create(context.Background(), validCreateRequest(creatorID))
	require.NoError(t, err)

	assert.NotZero(t, course.ID)
	assert.Equal(t, "go-for-beginners", course.Slug)
	assert.Equal(t, creatorID, course.CreatorID)
	assert.True(t, course.Active)
}

func TestCreateCourseValidation(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	req := validCreateRequest(creatorID)
	req.Title = "Go"
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	req = validCreateRequest(creatorID)
	req.Description = "too short"
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)

	req = validCreateRequest(creatorID)
	req.Price = domain.PriceMax + 1
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	req = validCreateRequest(creatorID)
	req.Category = "Cooking"
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	req = validCreateRequest(creatorID)
	req.Level = "Expert"
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	req = validCreateRequest(creatorID)
	req.DurationHours = 0.1
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	req = validCreateRequest(creatorID)
	req.CreatorID = "not-a-number"
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidCreator)
}

func TestCreateCourseUnknownCreator(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), validCreateRequest(f.node.Generate()))
	assert.ErrorIs(t, err, domain.ErrCreatorNotFound)
}

func TestUpdateCourse(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	course, err := f.svc.Create(context.Background(), validCreateRequest(creatorID))
	require.NoError(t, err)

	title := "Advanced Go Patterns"
	price := 89.0
	updated, err := f.svc.Update(context.Background(), domain.UpdateCourseRequest{
		ID:    course.ID.String(),
		Title: &title,
		Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, "Advanced Go Patterns", updated.Title)
	assert.Equal(t, "advanced-go-patterns", updated.Slug)
	assert.Equal(t, 89.0, updated.Price)
	// untouched fields keep their values
	assert.Equal(t, course.Description, updated.Description)

	bad := "Expert"
	_, err = f.svc.Update(context.Background(), domain.UpdateCourseRequest{
		ID:    course.ID.String(),
		Level: &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)
}

func TestDeleteCourseHidesIt(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	course, err := f.svc.Create(context.Background(), validCreateRequest(creatorID))
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), domain.DeleteCourseRequest{ID: course.ID.String()})
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), domain.GetCourseRequest{ID: course.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(context.Background(), domain.DeleteCourseRequest{ID: course.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCoursesFilters(t *testing.T) {
	f := setup(t)
	creatorID := f.seedCreator(t)

	req := validCreateRequest(creatorID)
	cheap, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	req = validCreateRequest(creatorID)
	req.Title = "Design Fundamentals"
	req.Category = "Design"
	req.Price = 199.0
	expensive, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	resp, err := f.svc.List(context.Background(), domain.ListCourseRequest{
		CreatorID: creatorID.String(),
		Category:  "Design",
	})
	require.NoError(t, err)
	require.Len(t, resp.Courses, 1)
	assert.Equal(t, expensive.ID, resp.Courses[0].ID)

	maxPrice := 100.0
	resp, err = f.svc.List(context.Background(), domain.ListCourseRequest{
		CreatorID: creatorID.String(),
		MaxPrice:  &maxPrice,
	})
	require.NoError(t, err)
	require.Len(t, resp.Courses, 1)
	assert.Equal(t, cheap.ID, resp.Courses[0].ID)
}
