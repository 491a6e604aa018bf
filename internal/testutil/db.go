package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.OpenSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	hash := "hash"
	user := &models.User{Email: email, Name: email, Role: role, PasswordHash: &hash}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateVenue(t *testing.T, db *gorm.DB, ownerID string, capacity int, posted bool) *models.Venue {
	t.Helper()
	venue := &models.Venue{
		OwnerID:  ownerID,
		Name:     "Venue " + uuid.NewString()[:8],
		Capacity: capacity,
		Price:    1000,
		IsPosted: posted,
		Images:   []string{},
	}
	require.NoError(t, db.Create(venue).Error)
	return venue
}

// Day returns the UTC calendar date offset days from today.
func Day(offset int) time.Time {
	return models.CalendarDate(time.Now().UTC()).AddDate(0, 0, offset)
}
