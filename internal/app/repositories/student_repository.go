package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/schemas"
	"github.com/yigit/studentreg/internal/db"
	"github.com/yigit/studentreg/internal/pkg/validation"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	store  *db.Store
	schema *validation.Schema[models.Student]
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(store *db.Store) *StudentRepository {
	return &StudentRepository{
		store:  store,
		schema: schemas.Student(),
	}
}

// Create validates and inserts a student
func (r *StudentRepository) Create(ctx context.Context, student models.Student) (models.Student, error) {
	return db.CreateOne(ctx, r.store, db.CollectionStudents, student, r.schema)
}

// FindAll lists students newest first. skip and limit of zero return everything.
func (r *StudentRepository) FindAll(ctx context.Context, skip, limit int64) ([]models.Student, error) {
	return db.FindMany(ctx, r.store, db.CollectionStudents, bson.D{}, r.schema, db.FindOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  skip,
		Limit: limit,
	})
}

// GetByID returns the student with the given object id, or nil
func (r *StudentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	return db.FindOne(ctx, r.store, db.CollectionStudents, bson.D{{Key: "_id", Value: id}}, r.schema)
}

// GetByStudentID returns the first student registered under the institution id, or nil
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return db.FindOne(ctx, r.store, db.CollectionStudents, bson.D{{Key: "studentId", Value: studentID}}, r.schema)
}

// Count returns the number of stored students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	return db.CountDocuments(ctx, r.store, db.CollectionStudents, nil)
}
