package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/pkg/helpers"
)

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	store  StudentStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewStudentService creates a new student service
func NewStudentService(store StudentStore, lgr zerolog.Logger) StudentService {
	return &studentServiceImpl{
		store:  store,
		logger: lgr.With().Str("service", "student").Logger(),
		now:    helpers.NowUTC,
	}
}

// CreateStudent stamps the registration time and persists the student.
// Identity and timestamps sent by the client are never trusted.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	student := req.ToModel()
	now := s.now()
	student.CreatedAt = now
	student.UpdatedAt = now

	created, err := s.store.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("id", created.ID.Hex()).
		Str("studentId", created.StudentID).
		Msg("Student registered")
	return &created, nil
}

// GetAllStudents lists students newest first, optionally paged
func (s *studentServiceImpl) GetAllStudents(ctx context.Context, req dto.ListStudentsRequest) ([]models.Student, error) {
	skip, limit := helpers.CalculateSkipLimit(req.Page, req.PageSize)
	return s.store.FindAll(ctx, skip, limit)
}
