package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planhub-backend-go/internal/db"
	"planhub-backend-go/internal/models"
)

// memoryUserRepository is an in-memory stand-in for the Firestore user
// repository, with the same conditional-create and partial-update semantics.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*models.User)}
}

func (m *memoryUserRepository) GetByID(_ context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, db.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; ok {
		return fmt.Errorf("user with ID '%s' already exists: %w", user.ID, db.ErrAlreadyExists)
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUserRepository) Update(_ context.Context, userID string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user with ID '%s' not found: %w", userID, db.ErrNotFound)
	}
	lastLoginSupplied := false
	for path, value := range fields {
		switch path {
		case "email":
			user.Email = value.(string)
		case "displayName":
			user.DisplayName = value.(string)
		case "photoURL":
			user.PhotoURL = value.(string)
		case "plan":
			user.Plan = value.(models.Plan)
		case "lastLogin":
			user.LastLogin = value.(time.Time)
			lastLoginSupplied = true
		default:
			return fmt.Errorf("unexpected field path %q", path)
		}
	}
	if !lastLoginSupplied {
		user.LastLogin = time.Now().UTC()
	}
	return nil
}

// recordingAuditService captures audit entries instead of persisting them.
type recordingAuditService struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *recordingAuditService) Record(_ context.Context, entry models.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingAuditService) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

func newTestUserService(t *testing.T, now time.Time) (*userService, *memoryUserRepository, *recordingAuditService) {
	t.Helper()
	repo := newMemoryUserRepository()
	audit := &recordingAuditService{}
	svc := NewUserService(repo, audit).(*userService)
	svc.now = func() time.Time { return now }
	return svc, repo, audit
}

func TestUserServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("default creation yields a seven day trial", func(t *testing.T) {
		svc, _, audit := newTestUserService(t, now)

		user, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{})
		require.NoError(t, err)

		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, models.PlanTrial, user.Plan.Type)
		assert.Equal(t, models.PlanStatusActive, user.Plan.Status)
		require.NotNil(t, user.Plan.SubscriptionEnd)
		assert.Equal(t, now.Add(7*24*time.Hour), *user.Plan.SubscriptionEnd)
		assert.Equal(t, now, user.CreatedAt)
		assert.Equal(t, now, user.LastLogin)

		days := DaysRemaining(user.Plan, now)
		require.NotNil(t, days)
		assert.Equal(t, 7, *days)
		assert.False(t, IsExpired(user.Plan, now))

		assert.Equal(t, []string{models.AuditActionUserCreate}, audit.actions())
	})

	t.Run("explicit non-trial tier is non-expiring", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, now)

		user, err := svc.Create(ctx, "u2", "b@x.com", models.CreateUserRequest{PlanType: models.PlanPro})
		require.NoError(t, err)
		assert.Equal(t, models.PlanPro, user.Plan.Type)
		assert.Nil(t, user.Plan.SubscriptionEnd)
	})

	t.Run("invalid tier rejected without storing anything", func(t *testing.T) {
		svc, repo, audit := newTestUserService(t, now)

		_, err := svc.Create(ctx, "u3", "c@x.com", models.CreateUserRequest{PlanType: "bogus"})
		require.ErrorIs(t, err, ErrInvalidPlanType)
		_, err = repo.GetByID(ctx, "u3")
		require.ErrorIs(t, err, db.ErrNotFound)
		assert.Empty(t, audit.actions())
	})

	t.Run("duplicate create fails with already exists", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, now)

		_, err := svc.Create(ctx, "u4", "d@x.com", models.CreateUserRequest{})
		require.NoError(t, err)
		_, err = svc.Create(ctx, "u4", "d@x.com", models.CreateUserRequest{})
		require.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestUserServiceCreateConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestUserService(t, now)

	const callers = 50
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{
				DisplayName: fmt.Sprintf("caller-%d", n),
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	winners := 0
	for err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrUserAlreadyExists)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent create must win")

	// The stored document matches the winner's payload: a losing caller's
	// display name never overwrites it.
	stored, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanTrial, stored.Plan.Type)
}

func TestUserServiceGetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("read refreshes lastLogin", func(t *testing.T) {
		svc, repo, _ := newTestUserService(t, created)
		_, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{})
		require.NoError(t, err)

		later := created.Add(48 * time.Hour)
		svc.now = func() time.Time { return later }

		user, err := svc.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, later, user.LastLogin)

		stored, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, later, stored.LastLogin)
	})

	t.Run("unknown user fails with not found", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, created)
		_, err := svc.GetByID(ctx, "missing")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserServiceUpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("merges only supplied fields and touches lastLogin", func(t *testing.T) {
		svc, repo, _ := newTestUserService(t, now)
		_, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{
			DisplayName: "Alice",
			PhotoURL:    "https://x.com/a.png",
		})
		require.NoError(t, err)

		later := now.Add(time.Hour)
		svc.now = func() time.Time { return later }

		name := "Alice B."
		require.NoError(t, svc.UpdateProfile(ctx, "u1", models.UpdateProfileRequest{DisplayName: &name}))

		stored, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Alice B.", stored.DisplayName)
		assert.Equal(t, "https://x.com/a.png", stored.PhotoURL, "omitted field must stay untouched")
		assert.Equal(t, "a@x.com", stored.Email)
		assert.Equal(t, later, stored.LastLogin)
	})

	t.Run("unknown user fails with not found", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, now)
		name := "nobody"
		err := svc.UpdateProfile(ctx, "missing", models.UpdateProfileRequest{DisplayName: &name})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserServiceChangePlan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("replaces the plan wholesale", func(t *testing.T) {
		svc, repo, audit := newTestUserService(t, now)
		_, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{})
		require.NoError(t, err)

		later := now.Add(72 * time.Hour)
		svc.now = func() time.Time { return later }

		plan, err := svc.ChangePlan(ctx, "u1", models.ChangePlanRequest{
			PlanType:          models.PlanPro,
			ExternalBillingID: "cus_123",
		})
		require.NoError(t, err)

		assert.Equal(t, models.PlanPro, plan.Type)
		assert.Equal(t, models.PlanStatusActive, plan.Status)
		assert.Nil(t, plan.SubscriptionEnd, "prior trial end date must be discarded")
		assert.Equal(t, "cus_123", plan.ExternalBillingID)
		assert.Equal(t, later, plan.SubscriptionStart)
		assert.Equal(t, later, plan.LastUpdated)

		assert.Nil(t, DaysRemaining(*plan, later))
		assert.False(t, IsExpired(*plan, later))

		stored, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, *plan, stored.Plan)

		assert.Equal(t, []string{models.AuditActionUserCreate, models.AuditActionPlanChange}, audit.actions())
	})

	t.Run("invalid tier leaves the stored plan unchanged", func(t *testing.T) {
		svc, repo, _ := newTestUserService(t, now)
		_, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{})
		require.NoError(t, err)
		before, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)

		_, err = svc.ChangePlan(ctx, "u1", models.ChangePlanRequest{PlanType: "bogus"})
		require.ErrorIs(t, err, ErrInvalidPlanType)

		after, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, before.Plan, after.Plan)
	})

	t.Run("unknown user fails with not found", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, now)
		_, err := svc.ChangePlan(ctx, "missing", models.ChangePlanRequest{PlanType: models.PlanPro})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserServiceStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("trial stats", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, now)
		_, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{})
		require.NoError(t, err)

		later := now.Add(5*24*time.Hour + 30*time.Minute) // 1d23h30m left
		svc.now = func() time.Time { return later }

		stats, err := svc.Stats(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, models.PlanTrial, stats.PlanType)
		require.NotNil(t, stats.DaysRemaining)
		assert.Equal(t, 2, *stats.DaysRemaining)
		assert.False(t, stats.IsExpired)
		assert.Equal(t, now, stats.MemberSince)
	})

	t.Run("expired trial", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, now)
		_, err := svc.Create(ctx, "u1", "a@x.com", models.CreateUserRequest{})
		require.NoError(t, err)

		later := now.Add(7*24*time.Hour + time.Second)
		svc.now = func() time.Time { return later }

		stats, err := svc.Stats(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, stats.DaysRemaining)
		assert.Equal(t, 0, *stats.DaysRemaining)
		assert.True(t, stats.IsExpired)
	})

	t.Run("unknown user fails with not found", func(t *testing.T) {
		svc, _, _ := newTestUserService(t, now)
		_, err := svc.Stats(ctx, "missing")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

// failingAuditRepository always errors, to prove audit writes are best effort.
type failingAuditRepository struct{}

func (failingAuditRepository) Create(context.Context, models.AuditLog) error {
	return errors.New("firestore unavailable")
}

// capturingAuditRepository stores entries for inspection.
type capturingAuditRepository struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (c *capturingAuditRepository) Create(_ context.Context, entry models.AuditLog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	return nil
}

func TestAuditService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fills in id and timestamp", func(t *testing.T) {
		repo := &capturingAuditRepository{}
		svc := NewAuditService(repo, nil)

		svc.Record(ctx, models.AuditLog{UserID: "u1", Action: models.AuditActionPlanChange})

		require.Len(t, repo.entries, 1)
		assert.NotEmpty(t, repo.entries[0].ID)
		assert.False(t, repo.entries[0].Timestamp.IsZero())
		assert.Equal(t, "u1", repo.entries[0].UserID)
	})

	t.Run("storage failure never propagates", func(t *testing.T) {
		svc := NewAuditService(failingAuditRepository{}, nil)
		assert.NotPanics(t, func() {
			svc.Record(ctx, models.AuditLog{UserID: "u1", Action: models.AuditActionUserCreate})
		})
	})
}
