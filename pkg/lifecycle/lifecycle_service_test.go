package lifecycle

import (
	"context"
	"testing"
	"time"

	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func age(t *testing.T, db *gorm.DB, food *entities.Food, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Model(food).UpdateColumn("created_at", createdAt).Error)
}

func TestSweep(t *testing.T) {
	db := testutil.NewTestDB(t)
	service := NewLifecycleService(NewLifecycleRepository(db), "", 0)
	donor := testutil.CreateUser(t, db, "donor", domain.RoleDonor)
	now := time.Now().UTC()

	stale := testutil.CreateFood(t, db, donor, 5)
	age(t, db, stale, now.Add(-4*24*time.Hour))

	fresh := testutil.CreateFood(t, db, donor, 5)
	age(t, db, fresh, now.Add(-2*24*time.Hour))

	stalePicked := testutil.CreateFood(t, db, donor, 0)
	age(t, db, stalePicked, now.Add(-5*24*time.Hour))
	require.NoError(t, db.Model(stalePicked).Update("status", domain.FoodStatusPicked).Error)

	count, err := service.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	swept := testutil.ReloadFood(t, db, stale)
	assert.Equal(t, domain.FoodTypeCompost, swept.FoodType)
	assert.Equal(t, domain.FoodStatusPicked, swept.Status)
	assert.Equal(t, 5, swept.Quantity)

	untouched := testutil.ReloadFood(t, db, fresh)
	assert.Equal(t, domain.FoodTypeEdible, untouched.FoodType)
	assert.Equal(t, domain.FoodStatusAvailable, untouched.Status)

	assert.Equal(t, domain.FoodTypeEdible, testutil.ReloadFood(t, db, stalePicked).FoodType)

	// idempotent
	count, err = service.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, swept.Status, testutil.ReloadFood(t, db, stale).Status)
	assert.Equal(t, swept.FoodType, testutil.ReloadFood(t, db, stale).FoodType)
}

func TestSweep_RetentionIsConfigurable(t *testing.T) {
	db := testutil.NewTestDB(t)
	service := NewLifecycleService(NewLifecycleRepository(db), "", 1)
	donor := testutil.CreateUser(t, db, "donor", domain.RoleDonor)
	now := time.Now().UTC()

	food := testutil.CreateFood(t, db, donor, 5)
	age(t, db, food, now.Add(-36*time.Hour))

	count, err := service.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	db := testutil.NewTestDB(t)
	service := NewLifecycleService(NewLifecycleRepository(db), "every now and then", 3)

	assert.Error(t, service.Start())
}

func TestStartStop(t *testing.T) {
	db := testutil.NewTestDB(t)
	service := NewLifecycleService(NewLifecycleRepository(db), "@every 1h", 3)

	require.NoError(t, service.Start())
	select {
	case <-service.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
