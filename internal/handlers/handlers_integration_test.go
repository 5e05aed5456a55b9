package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bookclub/internal/app"
	"bookclub/internal/database"
	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupApp builds the full application on a fresh in-memory SQLite database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return app.New(app.Options{DB: db, Quiet: true}), db
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createUser(t *testing.T, app *fiber.App, name, role string) models.User {
	t.Helper()
	body := map[string]interface{}{"name": name, "email": name + "@example.com"}
	if role != "" {
		body["role"] = role
	}
	resp := doRequest(t, app, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user models.User
	decode(t, resp, &user)
	return user
}

func createBook(t *testing.T, app *fiber.App, title string, proposedBy uint) models.Book {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/books", map[string]interface{}{
		"title":       title,
		"author":      "Author of " + title,
		"pages":       320,
		"genre":       "Fantasy",
		"proposed_by": proposedBy,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var book models.Book
	decode(t, resp, &book)
	return book
}

func castVote(t *testing.T, app *fiber.App, bookID, userID uint, value int) models.Vote {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/votes", map[string]interface{}{
		"book_id":    bookID,
		"user_id":    userID,
		"vote_value": value,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var vote models.Vote
	decode(t, resp, &vote)
	return vote
}

func getVote(t *testing.T, app *fiber.App, bookID, userID uint) *models.Vote {
	t.Helper()
	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/votes/%d/%d", bookID, userID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var vote *models.Vote
	decode(t, resp, &vote)
	return vote
}

func getRanking(t *testing.T, app *fiber.App) []models.RankedBook {
	t.Helper()
	resp := doRequest(t, app, http.MethodGet, "/api/books/ranking/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ranked []models.RankedBook
	decode(t, resp, &ranked)
	return ranked
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	decode(t, resp, &body)
	return body["error"]
}

func TestUserEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	zoe := createUser(t, app, "zoe", "")
	assert.NotZero(t, zoe.ID)
	assert.Equal(t, models.RoleMember, zoe.Role)
	createUser(t, app, "adam", models.RoleAdmin)

	// Duplicate email is rejected by the store
	resp := doRequest(t, app, http.MethodPost, "/api/users", map[string]string{"name": "zoe2", "email": "zoe@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp), "UNIQUE")

	// Missing email
	resp = doRequest(t, app, http.MethodPost, "/api/users", map[string]string{"name": "nobody"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp), "Email")

	resp = doRequest(t, app, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	decode(t, resp, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "adam", users[0].Name)
	assert.Equal(t, "zoe", users[1].Name)
}

func TestBookListIncludesProposerName(t *testing.T) {
	app, _ := setupApp(t)

	ann := createUser(t, app, "ann", "")
	first := createBook(t, app, "First", ann.ID)
	second := createBook(t, app, "Second", 999) // dangling proposer is accepted

	resp := doRequest(t, app, http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var books []models.BookWithProposer
	decode(t, resp, &books)

	require.Len(t, books, 2)
	assert.Equal(t, second.ID, books[0].ID, "newest proposal first")
	assert.Nil(t, books[0].ProposedByName)
	assert.Equal(t, first.ID, books[1].ID)
	require.NotNil(t, books[1].ProposedByName)
	assert.Equal(t, "ann", *books[1].ProposedByName)
	assert.Equal(t, models.BookStatusVoting, books[1].Status)
}

func TestCreateBookRequiresTitleAndAuthor(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/books", map[string]interface{}{"title": "No Author"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp), "Author")
}

func TestRankingScenario(t *testing.T) {
	app, _ := setupApp(t)

	createUser(t, app, "admin", models.RoleAdmin) // id 1
	a := createUser(t, app, "a", "")              // id 2
	b := createUser(t, app, "b", "")              // id 3
	c := createUser(t, app, "c", "")              // id 4
	require.Equal(t, uint(2), a.ID)

	x := createBook(t, app, "X", a.ID)
	time.Sleep(5 * time.Millisecond)
	quiet := createBook(t, app, "Quiet", b.ID)
	time.Sleep(5 * time.Millisecond)
	loved := createBook(t, app, "Loved", c.ID)

	castVote(t, app, x.ID, b.ID, 2)
	castVote(t, app, x.ID, c.ID, -1)
	castVote(t, app, loved.ID, a.ID, 1)
	castVote(t, app, loved.ID, b.ID, 7) // non-canonical, scores 0

	ranked := getRanking(t, app)
	require.Len(t, ranked, 3)

	// X and Loved tie on 1; X was proposed first.
	assert.Equal(t, x.ID, ranked[0].ID)
	assert.Equal(t, 1, ranked[0].Score)
	assert.Equal(t, 2, ranked[0].VoteCount)
	require.NotNil(t, ranked[0].ProposedByName)
	assert.Equal(t, "a", *ranked[0].ProposedByName)

	assert.Equal(t, loved.ID, ranked[1].ID)
	assert.Equal(t, 1, ranked[1].Score)
	assert.Equal(t, 2, ranked[1].VoteCount)

	assert.Equal(t, quiet.ID, ranked[2].ID)
	assert.Equal(t, 0, ranked[2].Score)
	assert.Equal(t, 0, ranked[2].VoteCount)
}

func TestVoteUpsert(t *testing.T) {
	app, db := setupApp(t)

	ann := createUser(t, app, "ann", "")
	book := createBook(t, app, "Book", ann.ID)

	first := castVote(t, app, book.ID, ann.ID, 1)
	second := castVote(t, app, book.ID, ann.ID, -2)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("book_id = ? AND user_id = ?", book.ID, ann.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	vote := getVote(t, app, book.ID, ann.ID)
	require.NotNil(t, vote)
	require.NotNil(t, vote.VoteValue)
	assert.Equal(t, -2, *vote.VoteValue)

	assert.Nil(t, getVote(t, app, book.ID, 999))

	// Missing book_id
	resp := doRequest(t, app, http.MethodPost, "/api/votes", map[string]interface{}{"user_id": ann.ID, "vote_value": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/votes/abc/1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteBookAuthorization(t *testing.T) {
	app, _ := setupApp(t)

	createUser(t, app, "admin", models.RoleAdmin) // id 1
	two := createUser(t, app, "two", "")         // id 2
	three := createUser(t, app, "three", "")     // id 3
	book := createBook(t, app, "Theirs", three.ID)
	castVote(t, app, book.ID, two.ID, 2)

	// Non-admin, non-proposer is refused, even when claiming admin_id.
	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/books/%d", book.ID), map[string]interface{}{"user_id": two.ID, "admin_id": two.ID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Unauthorized", errorMessage(t, resp))
	assert.Len(t, getRanking(t, app), 1)
	assert.NotNil(t, getVote(t, app, book.ID, two.ID))

	// No body at all
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/books/%d", book.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/books/%d", book.ID), map[string]interface{}{"user_id": three.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted map[string]interface{}
	decode(t, resp, &deleted)
	assert.Equal(t, true, deleted["success"])

	assert.Empty(t, getRanking(t, app))
	assert.Nil(t, getVote(t, app, book.ID, two.ID))

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/books/%d", book.ID), map[string]interface{}{"user_id": three.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Book not found", errorMessage(t, resp))
}

func TestAdminDeletesAnyBook(t *testing.T) {
	app, _ := setupApp(t)

	admin := createUser(t, app, "admin", models.RoleAdmin)
	owner := createUser(t, app, "owner", "")
	book := createBook(t, app, "Book", owner.ID)

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/books/%d", book.ID), map[string]interface{}{"user_id": admin.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, getRanking(t, app))
}

func TestUpdateBook(t *testing.T) {
	app, _ := setupApp(t)

	admin := createUser(t, app, "admin", models.RoleAdmin)
	owner := createUser(t, app, "owner", "")
	other := createUser(t, app, "other", "")
	book := createBook(t, app, "Draft", owner.ID)
	path := fmt.Sprintf("/api/books/%d", book.ID)

	update := map[string]interface{}{
		"title":            "Final",
		"author":           "Writer",
		"pages":            410,
		"publication_year": 2001,
		"user_id":          other.ID,
	}
	resp := doRequest(t, app, http.MethodPut, path, update)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	update["user_id"] = owner.ID
	resp = doRequest(t, app, http.MethodPut, path, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Book
	decode(t, resp, &updated)
	assert.Equal(t, "Final", updated.Title)
	require.NotNil(t, updated.Pages)
	assert.Equal(t, 410, *updated.Pages)
	assert.Nil(t, updated.Genre, "fields left out of the update are cleared")

	update["title"] = "By Admin"
	update["user_id"] = admin.ID
	resp = doRequest(t, app, http.MethodPut, path, update)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	ranked := getRanking(t, app)
	require.Len(t, ranked, 1)
	assert.Equal(t, "By Admin", ranked[0].Title)
	require.NotNil(t, ranked[0].ProposedBy)
	assert.Equal(t, owner.ID, *ranked[0].ProposedBy)

	resp = doRequest(t, app, http.MethodPut, "/api/books/999", update)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteUser(t *testing.T) {
	app, db := setupApp(t)

	admin := createUser(t, app, "admin", models.RoleAdmin)
	leaver := createUser(t, app, "leaver", "")
	heir := createUser(t, app, "heir", "")
	kept := createBook(t, app, "Kept", heir.ID)
	mine := createBook(t, app, "Mine", leaver.ID)
	castVote(t, app, kept.ID, leaver.ID, 2)
	castVote(t, app, mine.ID, heir.ID, 1)
	path := fmt.Sprintf("/api/users/%d", leaver.ID)

	resp := doRequest(t, app, http.MethodDelete, path, map[string]interface{}{"admin_id": heir.ID, "delete_books": true})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only admin can delete users", errorMessage(t, resp))

	resp = doRequest(t, app, http.MethodDelete, path, map[string]interface{}{"admin_id": admin.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Specify transfer_books_to or delete_books", errorMessage(t, resp))

	resp = doRequest(t, app, http.MethodDelete, path, map[string]interface{}{"admin_id": admin.ID, "delete_books": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	ranked := getRanking(t, app)
	require.Len(t, ranked, 1)
	assert.Equal(t, kept.ID, ranked[0].ID)
	assert.Nil(t, getVote(t, app, mine.ID, heir.ID))
	// Votes the deleted user cast on other books stay behind.
	assert.NotNil(t, getVote(t, app, kept.ID, leaver.ID))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", leaver.ID).Count(&users).Error)
	assert.Zero(t, users)

	resp = doRequest(t, app, http.MethodDelete, path, map[string]interface{}{"admin_id": admin.ID, "delete_books": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteUserTransfersBooks(t *testing.T) {
	app, _ := setupApp(t)

	admin := createUser(t, app, "admin", models.RoleAdmin)
	leaver := createUser(t, app, "leaver", "")
	heir := createUser(t, app, "heir", "")
	book := createBook(t, app, "Handed Over", leaver.ID)
	castVote(t, app, book.ID, heir.ID, 2)

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", leaver.ID), map[string]interface{}{
		"admin_id":          admin.ID,
		"transfer_books_to": heir.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, heir.ID, body["books_transferred"])

	ranked := getRanking(t, app)
	require.Len(t, ranked, 1)
	require.NotNil(t, ranked[0].ProposedBy)
	assert.Equal(t, heir.ID, *ranked[0].ProposedBy)
	require.NotNil(t, ranked[0].ProposedByName)
	assert.Equal(t, "heir", *ranked[0].ProposedByName)
	assert.Equal(t, 2, ranked[0].Score)
}

func TestValidateBookEndpoint(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/validate-book", map[string]interface{}{
		"pages":            600,
		"publication_year": 1900,
		"series_order":     0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	decode(t, resp, &result)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)

	resp = doRequest(t, app, http.MethodPost, "/api/validate-book", map[string]interface{}{
		"pages":            300,
		"publication_year": 2010,
		"series_order":     1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &result)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestSessionsAndConstraints(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/sessions", map[string]interface{}{
		"name":     "Autumn",
		"end_date": time.Now().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session models.VotingSession
	decode(t, resp, &session)
	assert.Equal(t, models.SessionStatusActive, session.Status)

	resp = doRequest(t, app, http.MethodPost, "/api/sessions", map[string]interface{}{"name": "No deadline"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/sessions/%d/constraints", session.ID), map[string]interface{}{
		"max_pages":      250,
		"allowed_genres": "Mystery,Horror",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/sessions/999/constraints", map[string]interface{}{"max_pages": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/sessions/%d/constraints", session.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var constraints []models.BookConstraint
	decode(t, resp, &constraints)
	require.Len(t, constraints, 1)
	assert.Equal(t, session.ID, constraints[0].SessionID)

	resp = doRequest(t, app, http.MethodPost, "/api/validate-book", map[string]interface{}{
		"pages":      300,
		"genre":      "Romance",
		"session_id": session.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	decode(t, resp, &result)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)

	resp = doRequest(t, app, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessions []models.VotingSession
	decode(t, resp, &sessions)
	assert.Len(t, sessions, 1)
}

func TestHealthAndNoCacheHeaders(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, "no-store, no-cache, must-revalidate, max-age=0", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
	resp.Body.Close()
}
