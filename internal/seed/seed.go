package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/pkg/helpers"
)

// StudentWriter is the repository surface seeding needs
type StudentWriter interface {
	Create(ctx context.Context, student appModels.Student) (appModels.Student, error)
	Count(ctx context.Context) (int64, error)
}

// CreateDefaultData registers a few sample students when the collection is
// empty. It never touches a collection that already has data.
func CreateDefaultData(ctx context.Context, repo StudentWriter, lgr zerolog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		lgr.Info().Int64("students", n).Msg("Students already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding sample students...")
	var finalErr error // collect failures without stopping
	created := 0
	base := helpers.NowUTC()
	for i, s := range DefaultStudents() {
		// distinct timestamps keep the newest-first listing stable
		s.CreatedAt = base.Add(time.Duration(i) * time.Second)
		s.UpdatedAt = s.CreatedAt
		if _, err := repo.Create(ctx, s); err != nil {
			lgr.Error().Err(err).Str("studentId", s.StudentID).Msg("Error seeding student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}
	lgr.Info().Int("created", created).Msg("Seeding finished")
	return finalErr
}

// DefaultStudents is the sample data set
func DefaultStudents() []appModels.Student {
	return []appModels.Student{
		{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada.lovelace@example.com",
			DateOfBirth: appModels.NewDate(2004, time.December, 10),
			StudentID:   "S-2024-001",
			Phone:       "+1 555 010 2030",
			Address: appModels.Address{
				Street: "12 Analytical Way", City: "Boston", State: "MA", ZipCode: "02108", Country: "USA",
			},
			EnrollmentDate: appModels.NewDate(2024, time.September, 1),
			Course:         "B.Sc. Computer Science",
			Department:     "computer-science",
			Year:           1,
		},
		{
			FirstName:   "Srinivasa",
			LastName:    "Ramanujan",
			Email:       "s.ramanujan@example.com",
			DateOfBirth: appModels.NewDate(2003, time.December, 22),
			StudentID:   "S-2023-017",
			Phone:       "9876543210",
			Address: appModels.Address{
				Street: "4 Sarangapani Street", City: "Kumbakonam", State: "Tamil Nadu", ZipCode: "612001", Country: "India",
			},
			EnrollmentDate: appModels.NewDate(2023, time.August, 14),
			Course:         "B.Sc. Mathematics",
			Department:     "mathematics",
			Year:           2,
			GuardianName:   "K. Srinivasa Iyengar",
			GuardianPhone:  "9876500000",
		},
		{
			FirstName:   "Marie",
			LastName:    "Curie",
			Email:       "marie.curie@example.com",
			DateOfBirth: appModels.NewDate(2002, time.November, 7),
			StudentID:   "S-2022-042",
			Phone:       "+33 1 23 45 67 89",
			Address: appModels.Address{
				Street: "36 Quai de Bethune", City: "Paris", State: "Ile-de-France", ZipCode: "75004", Country: "France",
			},
			EnrollmentDate: appModels.NewDate(2022, time.October, 3),
			Course:         "B.Sc. Physics",
			Department:     "physics",
			Year:           3,
		},
	}
}
