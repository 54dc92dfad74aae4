package testutil

import (
	"testing"
	"time"

	migration "Food-Surplus-Backend/cmd/database/migrate"
	"Food-Surplus-Backend/entities"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database. A single connection
// keeps every query on the same in-memory schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name, role string) *entities.User {
	t.Helper()
	user := &entities.User{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "98765" + name,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateFood stores an edible, available listing owned by author.
func CreateFood(t *testing.T, db *gorm.DB, author *entities.User, quantity int) *entities.Food {
	t.Helper()
	now := time.Now().UTC()
	food := &entities.Food{
		AuthorID:     author.ID,
		Title:        "Leftover biryani",
		Quantity:     quantity,
		QuantityUnit: "kg",
		FoodType:     "edible",
		Status:       "available",
		Address:      "12 MG Road",
		Longitude:    77.5946,
		Latitude:     12.9716,
		PickupFrom:   now,
		PickupTo:     now.Add(48 * time.Hour),
	}
	require.NoError(t, db.Create(food).Error)
	return food
}

func ReloadFood(t *testing.T, db *gorm.DB, food *entities.Food) *entities.Food {
	t.Helper()
	var fresh entities.Food
	require.NoError(t, db.First(&fresh, "id = ?", food.ID).Error)
	return &fresh
}
