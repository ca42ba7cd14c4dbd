package store

import (
	"context"
	"path/filepath"
	"testing"

	"gamelist/backend/internal/config"
	"gamelist/backend/internal/database"
	"gamelist/backend/internal/logger"
	"gamelist/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	log := logger.NewConsoleLogger(config.LogLevelError)
	db, err := database.Connect(config.DatabaseSettings{Type: config.SqliteDbType, DSN: ":memory:"}, log)
	require.NoError(t, err, "Failed to create database connection")
	t.Cleanup(func() { _ = database.Close(db) })

	return New(db, log), db
}

func createTestUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Name: "Tester"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestList(t *testing.T, s *Store, authorID uint, name string) *models.List {
	t.Helper()
	list := &models.List{Name: name, Description: "desc", ImgURL: "https://example.com/a.png", AuthorID: authorID}
	require.NoError(t, s.CreateList(context.Background(), list))
	return list
}

func createTestGame(t *testing.T, s *Store, listID uint, title string) *models.Game {
	t.Helper()
	game := &models.Game{Title: title, Year: 2017, Description: "d", ImgURL: "https://example.com/c.png", ListID: listID}
	require.NoError(t, s.CreateGame(context.Background(), game))
	return game
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "dup@example.com")

	err := s.CreateUser(ctx, &models.User{Email: "dup@example.com", PasswordHash: "other", Name: "Other"})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLookups_NotFound(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.UserByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UserWithLists(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.ListByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.ListWithGames(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GameByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteList(ctx, 99), ErrNotFound)
	assert.ErrorIs(t, s.DeleteGame(ctx, 99), ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, 99), ErrNotFound)
	assert.ErrorIs(t, s.SetListSorted(ctx, 99, true), ErrNotFound)
	assert.ErrorIs(t, s.UpdateGameReview(ctx, 99, 10, "x"), ErrNotFound)
}

func TestCreateList_RoundTrip(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "lists@example.com")
	created := createTestList(t, s, user.ID, "Favourites")

	fetched, err := s.ListByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Favourites", fetched.Name)
	assert.Equal(t, "desc", fetched.Description)
	assert.Equal(t, "https://example.com/a.png", fetched.ImgURL)
	assert.Equal(t, user.ID, fetched.AuthorID)
	assert.False(t, fetched.Sorted)
}

func TestUpdateList_OverwritesFieldsOnly(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "edit@example.com")
	list := createTestList(t, s, user.ID, "Old")
	require.NoError(t, s.SetListSorted(ctx, list.ID, true))

	list.Name = "New"
	list.Description = "New description"
	list.ImgURL = "https://example.com/new.png"
	require.NoError(t, s.UpdateList(ctx, list))

	fetched, err := s.ListByID(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Name)
	assert.Equal(t, "New description", fetched.Description)
	assert.Equal(t, "https://example.com/new.png", fetched.ImgURL)
	assert.True(t, fetched.Sorted)
	assert.Equal(t, user.ID, fetched.AuthorID)
}

func TestListWithGames_CreationOrderAndReview(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "games@example.com")
	list := createTestList(t, s, user.ID, "RPGs")
	first := createTestGame(t, s, list.ID, "First")
	second := createTestGame(t, s, list.ID, "Second")

	require.NoError(t, s.UpdateGameReview(ctx, second.ID, 88, "great"))

	fetched, err := s.ListWithGames(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Games, 2)
	assert.Equal(t, first.ID, fetched.Games[0].ID)
	assert.Nil(t, fetched.Games[0].Rating)
	require.NotNil(t, fetched.Games[1].Rating)
	assert.Equal(t, 88, *fetched.Games[1].Rating)
	assert.Equal(t, "great", *fetched.Games[1].Review)
}

func TestDeleteUser_CascadesToListsAndGames(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner@example.com")
	other := createTestUser(t, s, "other@example.com")

	for _, name := range []string{"A", "B"} {
		list := createTestList(t, s, owner.ID, name)
		createTestGame(t, s, list.ID, name+"-1")
		createTestGame(t, s, list.ID, name+"-2")
	}
	kept := createTestList(t, s, other.ID, "Kept")
	createTestGame(t, s, kept.ID, "Kept-1")

	require.NoError(t, s.DeleteUser(ctx, owner.ID))

	var lists, games int64
	require.NoError(t, db.Model(&models.List{}).Count(&lists).Error)
	require.NoError(t, db.Model(&models.Game{}).Count(&games).Error)
	assert.Equal(t, int64(1), lists)
	assert.Equal(t, int64(1), games)

	withLists, err := s.UserWithLists(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, withLists.Lists, 1)
	assert.Equal(t, kept.ID, withLists.Lists[0].ID)
}

func TestDeleteList_CascadesToGames(t *testing.T) {
	s, db := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "cascade@example.com")
	list := createTestList(t, s, user.ID, "Gone")
	game := createTestGame(t, s, list.ID, "Gone-1")

	require.NoError(t, s.DeleteList(ctx, list.ID))

	_, err := s.GameByID(ctx, game.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Game{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteUser_CascadesOnFileDatabase(t *testing.T) {
	log := logger.NewConsoleLogger(config.LogLevelError)
	dsn := filepath.Join(t.TempDir(), "gamelist.db")
	db, err := database.Connect(config.DatabaseSettings{Type: config.SqliteDbType, DSN: dsn}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	s := New(db, log)
	ctx := context.Background()

	owner := createTestUser(t, s, "file@example.com")
	list := createTestList(t, s, owner.ID, "Favourites")
	createTestGame(t, s, list.ID, "Celeste")

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// Keep one connection busy so the delete runs on another one.
	held, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	defer held.Close()

	var enabled int
	require.NoError(t, held.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)

	require.NoError(t, s.DeleteUser(ctx, owner.ID))

	var lists, games int64
	require.NoError(t, db.Model(&models.List{}).Where("author_id = ?", owner.ID).Count(&lists).Error)
	require.NoError(t, db.Model(&models.Game{}).Where("list_id = ?", list.ID).Count(&games).Error)
	assert.Zero(t, lists)
	assert.Zero(t, games)
}
