package migrations

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yigit/studentreg/internal/db"
)

const trackingCollection = "schema_migrations"

// Migration is one versioned change to the database layout
type Migration struct {
	Version     string
	Description string
	Apply       func(ctx context.Context, database *mongo.Database) error
}

// Migrator applies migrations in version order, each at most once
type Migrator struct {
	store      *db.Store
	migrations []Migration
	logger     zerolog.Logger
}

// NewMigrator creates a migrator for the given migrations
func NewMigrator(store *db.Store, lgr zerolog.Logger, migrations ...Migration) *Migrator {
	sorted := append([]Migration(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
	return &Migrator{
		store:      store,
		migrations: sorted,
		logger:     lgr.With().Str("component", "migrator").Logger(),
	}
}

// Versions lists migration versions in the order they run
func (m *Migrator) Versions() []string {
	out := make([]string, 0, len(m.migrations))
	for _, mig := range m.migrations {
		out = append(out, mig.Version)
	}
	return out
}

// Migrate applies every pending migration
func (m *Migrator) Migrate(ctx context.Context) error {
	database, err := m.store.Database()
	if err != nil {
		return err
	}
	tracking := database.Collection(trackingCollection)

	for _, mig := range m.migrations {
		applied, err := isMigrationApplied(ctx, tracking, mig.Version)
		if err != nil {
			return err
		}
		if applied {
			m.logger.Debug().Str("version", mig.Version).Msg("Migration already applied, skipping")
			continue
		}

		if err := mig.Apply(ctx, database); err != nil {
			return fmt.Errorf("migration %s (%s) failed: %w", mig.Version, mig.Description, err)
		}

		if _, err := tracking.InsertOne(ctx, bson.D{
			{Key: "_id", Value: mig.Version},
			{Key: "description", Value: mig.Description},
			{Key: "appliedAt", Value: time.Now().UTC()},
		}); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.Version, err)
		}
		m.logger.Info().Str("version", mig.Version).Str("description", mig.Description).Msg("Migration applied")
	}
	return nil
}

func isMigrationApplied(ctx context.Context, tracking *mongo.Collection, version string) (bool, error) {
	n, err := tracking.CountDocuments(ctx, bson.D{{Key: "_id", Value: version}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return n > 0, nil
}

// Default returns the migrations the service ships with
func Default() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "students by createdAt descending",
			Apply: createIndex(db.CollectionStudents, mongo.IndexModel{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("createdAt_desc"),
			}),
		},
		{
			Version:     "002",
			Description: "students by studentId",
			Apply: createIndex(db.CollectionStudents, mongo.IndexModel{
				Keys:    bson.D{{Key: "studentId", Value: 1}},
				Options: options.Index().SetName("studentId"),
			}),
		},
	}
}

func createIndex(collection string, model mongo.IndexModel) func(context.Context, *mongo.Database) error {
	return func(ctx context.Context, database *mongo.Database) error {
		_, err := database.Collection(collection).Indexes().CreateOne(ctx, model)
		return err
	}
}
