package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	userRepo *UserRepository

	emailSeq int
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Create new in-memory database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	// Run migrations
	err = db.AutoMigrate(&models.User{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.userRepo = NewUserRepository(s.db)
	s.ctx = context.Background()
	s.emailSeq = 0
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestUser() *models.User {
	user := &models.User{
		Email:          "test@example.com",
		HashedPassword: "irrelevant",
		FirstName:      "Test",
		LastName:       "User",
		IsActive:       true,
	}
	err := s.userRepo.CreateUser(s.ctx, user)
	s.Require().NoError(err)
	return user
}

func (s *DBRepositoryTestSuite) randomUser() *models.User {
	s.emailSeq++
	return &models.User{
		Email:          fmt.Sprintf("user%d@example.com", s.emailSeq),
		HashedPassword: "irrelevant",
		FirstName:      "Random",
		LastName:       fmt.Sprintf("User%d", s.emailSeq),
		IsActive:       true,
	}
}

// TestDBRepository runs the test suite for the DBRepository to verify no panic
func TestDBRepository(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
