package migrations

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yigit/studentreg/internal/config"
	"github.com/yigit/studentreg/internal/db"
	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

func noop(context.Context, *mongo.Database) error { return nil }

func TestNewMigrator_SortsByVersion(t *testing.T) {
	m := NewMigrator(db.NewStore(config.DatabaseConfig{Name: "x"}, zerolog.Nop()), zerolog.Nop(),
		Migration{Version: "003", Apply: noop},
		Migration{Version: "001", Apply: noop},
		Migration{Version: "002", Apply: noop},
	)
	assert.Equal(t, []string{"001", "002", "003"}, m.Versions())

	assert.Equal(t, []string{"001", "002"},
		NewMigrator(nil, zerolog.Nop(), Default()...).Versions())
}

func TestMigrate_NotConnected(t *testing.T) {
	m := NewMigrator(db.NewStore(config.DatabaseConfig{Name: "x"}, zerolog.Nop()), zerolog.Nop(), Default()...)
	assert.ErrorIs(t, m.Migrate(context.Background()), apperrors.ErrNotConnected)
}

func TestMigrate_AppliesOnce(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set, skipping MongoDB integration test")
	}

	ctx := context.Background()
	store := db.NewStore(config.DatabaseConfig{
		URI:            uri,
		Name:           "studentreg_mig_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		ConnectTimeout: 5 * time.Second,
	}, zerolog.Nop())
	database, err := store.Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Drop(ctx)
		_ = store.Close(ctx)
	})

	calls := 0
	counting := Migration{Version: "900", Description: "count", Apply: func(context.Context, *mongo.Database) error {
		calls++
		return nil
	}}
	migs := append(Default(), counting)

	require.NoError(t, NewMigrator(store, zerolog.Nop(), migs...).Migrate(ctx))
	require.NoError(t, NewMigrator(store, zerolog.Nop(), migs...).Migrate(ctx))
	assert.Equal(t, 1, calls)

	n, err := database.Collection(trackingCollection).CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	cursor, err := database.Collection(db.CollectionStudents).Indexes().List(ctx)
	require.NoError(t, err)
	var indexes []bson.M
	require.NoError(t, cursor.All(ctx, &indexes))
	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		names = append(names, idx["name"].(string))
	}
	assert.Contains(t, names, "createdAt_desc")
	assert.Contains(t, names, "studentId")

	failing := Migration{Version: "901", Description: "boom", Apply: func(context.Context, *mongo.Database) error {
		return errors.New("boom")
	}}
	err = NewMigrator(store, zerolog.Nop(), failing).Migrate(ctx)
	assert.ErrorContains(t, err, "migration 901 (boom) failed")
}
