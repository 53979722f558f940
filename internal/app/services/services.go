package services

import (
	"context"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/models/dto"
)

// Services defined in this package:
// - StudentService: registration and listing of students
// - SystemService: hello and health probes

// StudentService handles student registration and listing
type StudentService interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	GetAllStudents(ctx context.Context, req dto.ListStudentsRequest) ([]models.Student, error)
}

// SystemService answers the liveness endpoints
type SystemService interface {
	Hello() dto.HelloResponse
	Health(ctx context.Context) dto.HealthResponse
}

// StudentStore is the persistence the student service needs.
// *repositories.StudentRepository satisfies it.
type StudentStore interface {
	Create(ctx context.Context, student models.Student) (models.Student, error)
	FindAll(ctx context.Context, skip, limit int64) ([]models.Student, error)
}

// ConnectionChecker reports database reachability.
// *db.Store satisfies it.
type ConnectionChecker interface {
	IsConnected() bool
	Ping(ctx context.Context) error
}
