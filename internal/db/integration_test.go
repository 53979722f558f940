package db_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/schemas"
	"github.com/yigit/studentreg/internal/config"
	"github.com/yigit/studentreg/internal/db"
	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

// testStore connects to the server named by MONGODB_TEST_URI using a
// throwaway database that is dropped when the test ends.
func testStore(t *testing.T) (*db.Store, config.DatabaseConfig) {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set, skipping MongoDB integration test")
	}

	cfg := config.DatabaseConfig{
		URI:            uri,
		Name:           "studentreg_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		ConnectTimeout: 5 * time.Second,
	}
	store := db.NewStore(cfg, zerolog.Nop())

	ctx := context.Background()
	database, err := store.Connect(ctx)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Drop(ctx)
		_ = store.Close(ctx)
	})
	return store, cfg
}

func student(id string, year int) models.Student {
	return models.Student{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		DateOfBirth:    models.NewDate(2004, 12, 10),
		StudentID:      id,
		Phone:          "5551234567",
		Address:        models.Address{Street: "1 Main St", City: "Boston", State: "MA", ZipCode: "02108"},
		EnrollmentDate: models.NewDate(2024, 9, 1),
		Course:         "CS",
		Department:     "computer-science",
		Year:           year,
	}
}

func TestIntegration_CreateAndFind(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	schema := schemas.Student()

	created, err := db.CreateOne(ctx, store, db.CollectionStudents, student("S-1", 1), schema)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, schemas.DefaultCountry, created.Address.Country)

	found, err := db.FindOne(ctx, store, db.CollectionStudents, bson.M{"_id": created.ID}, schema)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "S-1", found.StudentID)
	assert.True(t, found.DateOfBirth.Equal(models.NewDate(2004, 12, 10).Time))

	missing, err := db.FindOne(ctx, store, db.CollectionStudents, bson.M{"studentId": "nope"}, schema)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_InvalidCreateWritesNothing(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	bad := student("S-1", 1)
	bad.Phone = "12345"
	_, err := db.CreateOne(ctx, store, db.CollectionStudents, bad, schemas.Student())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	n, err := db.CountDocuments(ctx, store, db.CollectionStudents, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIntegration_FindManyOptions(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	schema := schemas.Student()

	empty, err := db.FindMany(ctx, store, db.CollectionStudents, nil, schema, db.FindOptions{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for year := 5; year >= 1; year-- {
		_, err := db.CreateOne(ctx, store, db.CollectionStudents, student("S", year), schema)
		require.NoError(t, err)
	}

	page, err := db.FindMany(ctx, store, db.CollectionStudents, nil, schema, db.FindOptions{
		Sort:  bson.D{{Key: "year", Value: 1}},
		Skip:  1,
		Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0].Year)
	assert.Equal(t, 3, page[1].Year)

	filtered, err := db.FindMany(ctx, store, db.CollectionStudents, bson.M{"year": bson.M{"$gte": 4}}, schema, db.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestIntegration_UpdateOne(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	schema := schemas.Student()

	created, err := db.CreateOne(ctx, store, db.CollectionStudents, student("S-1", 1), schema)
	require.NoError(t, err)
	byID := bson.M{"_id": created.ID}

	updated, err := db.UpdateOne(ctx, store, db.CollectionStudents, byID, db.SetFields(bson.M{"course": "Mathematics"}), schema)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Mathematics", updated.Course)

	updated, err = db.UpdateOne(ctx, store, db.CollectionStudents, byID, db.Operators(bson.M{"$inc": bson.M{"year": 1}}), schema)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 2, updated.Year)

	none, err := db.UpdateOne(ctx, store, db.CollectionStudents, bson.M{"studentId": "nope"}, db.SetFields(bson.M{"course": "x"}), schema)
	require.NoError(t, err)
	assert.Nil(t, none)

	// a stored document that no longer conforms is reported, not returned
	_, err = db.UpdateOne(ctx, store, db.CollectionStudents, byID, db.SetFields(bson.M{"year": 9}), schema)
	verr, ok := apperrors.AsValidationError(err)
	require.True(t, ok)
	msg, _ := verr.Field("year")
	assert.Equal(t, "Year must be between 1 and 6", msg)
}

func TestIntegration_Delete(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	schema := schemas.Student()

	for _, id := range []string{"A", "B", "C"} {
		_, err := db.CreateOne(ctx, store, db.CollectionStudents, student(id, 1), schema)
		require.NoError(t, err)
	}

	deleted, err := db.DeleteOne(ctx, store, db.CollectionStudents, bson.M{"studentId": "A"})
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.DeleteOne(ctx, store, db.CollectionStudents, bson.M{"studentId": "A"})
	require.NoError(t, err)
	assert.False(t, deleted)

	n, err := db.CountDocuments(ctx, store, db.CollectionStudents, bson.M{"studentId": "B"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	removed, err := db.DeleteMany(ctx, store, db.CollectionStudents, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	n, err = db.CountDocuments(ctx, store, db.CollectionStudents, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIntegration_ConcurrentConnect(t *testing.T) {
	store, cfg := testStore(t)
	ctx := context.Background()

	first, err := store.Connect(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			database, err := store.Connect(ctx)
			assert.NoError(t, err)
			assert.Same(t, first, database)
		}()
	}
	wg.Wait()
	assert.NoError(t, store.Ping(ctx))

	var scoped *db.Store
	err = db.WithStore(ctx, cfg, zerolog.Nop(), func(s *db.Store) error {
		scoped = s
		assert.True(t, s.IsConnected())
		return nil
	})
	require.NoError(t, err)
	assert.False(t, scoped.IsConnected())
}
