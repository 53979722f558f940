package repositories

import (
	"github.com/yigit/studentreg/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(store *db.Store) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(store),
	}
}
