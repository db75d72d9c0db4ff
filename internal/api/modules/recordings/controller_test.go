package recordings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/internal/stores/recording"
	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(store recording.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), store)
	return engine
}

func TestListRecordings(t *testing.T) {
	store := recording.NewInMemoryStore()
	router := setupRouter(store)

	t.Run("empty store", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/recordings", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ListRecordingsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Empty(t, resp.Recordings)
	})

	t.Run("with records", func(t *testing.T) {
		require.NoError(t, store.Put(context.Background(), &consult.Session{
			ID:          "rec-1",
			PatientName: "Jordan Reyes",
			Status:      consult.StatusCompleted,
		}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/recordings", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ListRecordingsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Recordings, 1)
		assert.Equal(t, "rec-1", resp.Recordings[0].ID)
	})
}

func TestGetRecording(t *testing.T) {
	store := recording.NewInMemoryStore()
	require.NoError(t, store.Put(context.Background(), &consult.Session{
		ID:       "rec-1",
		Status:   consult.StatusCompleted,
		Fallback: true,
	}))
	router := setupRouter(store)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/recordings/rec-1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.GetRecordingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Recording)
		assert.True(t, resp.Recording.Fallback, "fallback flag must survive the wire")
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/recordings/nope", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp sdk.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Recording not found", resp.Error)
	})
}

func TestSaveRecording(t *testing.T) {
	store := recording.NewInMemoryStore()
	router := setupRouter(store)

	t.Run("valid record", func(t *testing.T) {
		body, err := json.Marshal(consult.Session{
			ID:          "rec-2",
			PatientName: "Sam Okafor",
			Duration:    42,
			Status:      consult.StatusCompleted,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/recordings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		stored, err := store.GetByID(context.Background(), "rec-2")
		require.NoError(t, err)
		assert.Equal(t, 42, stored.Duration)
	})

	t.Run("missing id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/recordings", bytes.NewReader([]byte(`{"patientName":"x"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteRecording(t *testing.T) {
	store := recording.NewInMemoryStore()
	require.NoError(t, store.Put(context.Background(), &consult.Session{ID: "rec-3"}))
	router := setupRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/recordings/rec-3", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/recordings/rec-3", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
