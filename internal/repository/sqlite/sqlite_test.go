package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	dbfs "github.com/Sagari-07/Capstone-Job-Portel/db"
	dbpkg "github.com/Sagari-07/Capstone-Job-Portel/internal/db"
	sqlite "github.com/Sagari-07/Capstone-Job-Portel/internal/repository/sqlite"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()

	d, err := dbpkg.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	require.NoError(t, dbpkg.Migrate(ctx, d, dbfs.Migrations))

	return sqlite.New(d, nil)
}

func seedUser(t *testing.T, repo *sqlite.SQLiteRepo, username, email, role string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	})
	require.NoError(t, err)
	return id
}

func TestUserLookup(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	// nil user should error
	_, err := repo.CreateUser(ctx, nil)
	require.Error(t, err)

	id := seedUser(t, repo, "alice", "alice@example.com", models.RoleUser)
	require.Positive(t, id)

	// unknown identifier resolves to nil, nil
	u, err := repo.GetByIdentifier(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, u)

	// by username
	u, err = repo.GetByIdentifier(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, id, u.ID)
	require.Equal(t, "alice@example.com", u.Email)
	require.NotEmpty(t, u.PasswordHash)

	// by email
	u, err = repo.GetByIdentifier(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "alice", u.Username)

	// by id
	u, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, models.RoleUser, u.Role)

	u, err = repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestUserUniqueness(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	seedUser(t, repo, "alice", "alice@example.com", models.RoleUser)

	_, err := repo.CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com", Role: models.RoleUser, PasswordHash: "h"})
	require.Error(t, err)
	_, err = repo.CreateUser(ctx, &models.User{Username: "other", Email: "alice@example.com", Role: models.RoleUser, PasswordHash: "h"})
	require.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	nowMs := time.Now().UTC().UnixMilli()
	s := &models.Session{
		Token:    "tok-1",
		UserID:   1,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
		Created:  nowMs,
		Expires:  nowMs + int64(4*time.Hour/time.Millisecond),
	}
	require.NoError(t, repo.CreateSession(ctx, s))

	got, err := repo.GetSession(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, s, got)

	// unknown token is nil, nil
	got, err = repo.GetSession(ctx, "tok-unknown")
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, repo.DeleteSession(ctx, "tok-1"))
	got, err = repo.GetSession(ctx, "tok-1")
	require.NoError(t, err)
	require.Nil(t, got)

	// deleting again is harmless
	require.NoError(t, repo.DeleteSession(ctx, "tok-1"))
}

func TestDeleteExpiredSessions(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	nowMs := time.Now().UTC().UnixMilli()
	require.NoError(t, repo.CreateSession(ctx, &models.Session{Token: "dead-1", Expires: nowMs - 100}))
	require.NoError(t, repo.CreateSession(ctx, &models.Session{Token: "dead-2", Expires: nowMs}))
	require.NoError(t, repo.CreateSession(ctx, &models.Session{Token: "live", Expires: nowMs + 10_000}))

	n, err := repo.DeleteExpiredSessions(ctx, nowMs)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	got, err := repo.GetSession(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestApplicationInsertAndListing(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.CreateApplication(ctx, nil)
	require.Error(t, err)

	uid := seedUser(t, repo, "carol", "carol@example.com", models.RoleUser)
	otherUID := seedUser(t, repo, "mallory", "mallory@example.com", models.RoleUser)

	insert := func(email string, userID *int64, appliedAt int64) int64 {
		id, err := repo.CreateApplication(ctx, &models.Application{
			JobID:      "job-1",
			JobTitle:   "Engineer",
			Name:       "Someone",
			Email:      email,
			ResumePath: "/uploads/resume-1-000001.pdf",
			UserID:     userID,
			AppliedAt:  appliedAt,
		})
		require.NoError(t, err)
		return id
	}

	// anonymous under carol's email, then owned by carol, then mallory's
	insert("carol@example.com", nil, 100)
	insert("carol@example.com", &uid, 300)
	insert("mallory@example.com", &otherUID, 200)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.EqualValues(t, 300, all[0].AppliedAt)
	require.EqualValues(t, 200, all[1].AppliedAt)
	require.EqualValues(t, 100, all[2].AppliedAt)

	// anonymous rows come back with no owner
	require.Nil(t, all[2].UserID)
	require.NotNil(t, all[0].UserID)

	// the OR-by-email condition reunites the anonymous submission
	mine, err := repo.ListByOwner(ctx, uid, "carol@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.EqualValues(t, 300, mine[0].AppliedAt)
	require.EqualValues(t, 100, mine[1].AppliedAt)

	theirs, err := repo.ListByOwner(ctx, otherUID, "mallory@example.com")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
}

func TestApplicationAppliedAtDefaultsToNow(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	before := time.Now().UTC().UnixMilli()
	_, err := repo.CreateApplication(ctx, &models.Application{
		JobID:      "job-1",
		JobTitle:   "Engineer",
		Name:       "Someone",
		Email:      "a@example.com",
		ResumePath: "/uploads/r.pdf",
	})
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.GreaterOrEqual(t, all[0].AppliedAt, before)
}
