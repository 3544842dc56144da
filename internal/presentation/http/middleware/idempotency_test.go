package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) Create(_ context.Context, key *entity.IdempotencyKey) error {
	r.keys[key.Key+"/"+key.UserID.String()] = key
	return nil
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return r.keys[key+"/"+userID.String()], nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(_ context.Context) error { return nil }

// idempotencyRouter mounts the key-optional middleware the way the client,
// product and expense route groups do
func idempotencyRouter(repo *memoryIdempotencyRepo, userID uuid.UUID) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)

	calls := new(int)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: repo}))
	router.POST("/clients", func(c *gin.Context) {
		*calls++
		c.JSON(201, gin.H{"success": true})
	})
	return router, calls
}

func postClients(router *gin.Engine, key string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString("{}"))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	router.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	router, calls := idempotencyRouter(newMemoryIdempotencyRepo(), uuid.New())

	first := postClients(router, "key-1")
	require.Equal(t, 201, first.Code)
	require.Equal(t, 1, *calls)

	second := postClients(router, "key-1")
	assert.Equal(t, 201, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	// The handler must not have run again
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	router, calls := idempotencyRouter(newMemoryIdempotencyRepo(), uuid.New())

	require.Equal(t, 201, postClients(router, "").Code)
	require.Equal(t, 201, postClients(router, "").Code)
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyExpiredKeyRunsAgain(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	userID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &entity.IdempotencyKey{
		Key:          "key-1",
		UserID:       userID,
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	router, calls := idempotencyRouter(repo, userID)

	rec := postClients(router, "key-1")
	assert.Equal(t, 201, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyKeysAreScopedToUser(t *testing.T) {
	repo := newMemoryIdempotencyRepo()

	routerA, callsA := idempotencyRouter(repo, uuid.New())
	routerB, callsB := idempotencyRouter(repo, uuid.New())

	require.Equal(t, 201, postClients(routerA, "key-1").Code)
	require.Equal(t, 201, postClients(routerB, "key-1").Code)

	assert.Equal(t, 1, *callsA)
	assert.Equal(t, 1, *callsB)
}
