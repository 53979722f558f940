package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

type mockStudentStore struct {
	created    []models.Student
	createErr  error
	list       []models.Student
	skip       int64
	limit      int64
	findAllErr error
}

func (m *mockStudentStore) Create(_ context.Context, s models.Student) (models.Student, error) {
	if m.createErr != nil {
		return models.Student{}, m.createErr
	}
	s.ID = primitive.NewObjectID()
	m.created = append(m.created, s)
	return s, nil
}

func (m *mockStudentStore) FindAll(_ context.Context, skip, limit int64) ([]models.Student, error) {
	m.skip, m.limit = skip, limit
	return m.list, m.findAllErr
}

type mockChecker struct {
	connected bool
	pingErr   error
}

func (m mockChecker) IsConnected() bool            { return m.connected }
func (m mockChecker) Ping(context.Context) error { return m.pingErr }

func TestCreateStudent_StampsTimestamps(t *testing.T) {
	store := &mockStudentStore{}
	svc := NewStudentService(store, zerolog.Nop()).(*studentServiceImpl)
	fixed := time.Date(2025, 4, 23, 12, 1, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	got, err := svc.CreateStudent(context.Background(), dto.CreateStudentRequest{FirstName: "Ada", StudentID: "S-1"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.False(t, got.ID.IsZero())
	assert.Equal(t, fixed, got.CreatedAt)
	assert.Equal(t, fixed, got.UpdatedAt)
	require.Len(t, store.created, 1)
	assert.Equal(t, "S-1", store.created[0].StudentID)
}

func TestCreateStudent_PassesErrorsThrough(t *testing.T) {
	verr := &apperrors.ValidationError{Fields: []apperrors.FieldError{{Field: "phone", Message: "Phone number must be at least 10 digits"}}}
	svc := NewStudentService(&mockStudentStore{createErr: verr}, zerolog.Nop())

	got, err := svc.CreateStudent(context.Background(), dto.CreateStudentRequest{})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetAllStudents_Paging(t *testing.T) {
	store := &mockStudentStore{list: []models.Student{{FirstName: "Ada"}}}
	svc := NewStudentService(store, zerolog.Nop())

	got, err := svc.GetAllStudents(context.Background(), dto.ListStudentsRequest{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Zero(t, store.skip)
	assert.Zero(t, store.limit)

	_, err = svc.GetAllStudents(context.Background(), dto.ListStudentsRequest{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(20), store.skip)
	assert.Equal(t, int64(10), store.limit)

	store.findAllErr = apperrors.ErrNotConnected
	_, err = svc.GetAllStudents(context.Background(), dto.ListStudentsRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNotConnected)
}

func TestHello(t *testing.T) {
	svc := NewSystemService(mockChecker{}, time.Now(), zerolog.Nop())
	assert.Equal(t, "Hello World", svc.Hello().Message)
}

func TestHealth(t *testing.T) {
	started := time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC)
	now := started.Add(90 * time.Second)

	tests := []struct {
		name       string
		checker    mockChecker
		wantStatus string
		wantMongo  string
	}{
		{"disconnected", mockChecker{}, dto.HealthOK, dto.MongoDisconnected},
		{"connected", mockChecker{connected: true}, dto.HealthOK, dto.MongoConnected},
		{"ping fails", mockChecker{connected: true, pingErr: errors.New("timeout")}, dto.HealthError, dto.MongoDisconnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSystemService(tt.checker, started, zerolog.Nop()).(*systemServiceImpl)
			svc.now = func() time.Time { return now }

			h := svc.Health(context.Background())
			assert.Equal(t, tt.wantStatus, h.Status)
			assert.Equal(t, tt.wantMongo, h.MongoDB)
			assert.Equal(t, 90.0, h.Uptime)
			assert.Equal(t, "2025-04-23T12:01:30.000Z", h.Timestamp)
		})
	}
}
