package recording

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession(id string) *consult.Session {
	return &consult.Session{
		ID:            id,
		PatientName:   "Jordan Reyes",
		DoctorName:    "Dr. Patel",
		Duration:      125,
		Transcription: "Patient reports intermittent headaches for two weeks.",
		ClinicalNotes: &consult.ClinicalNotes{
			Subjective:  "Intermittent headaches, two weeks",
			Objective:   "BP 120/80, no focal deficits",
			Assessment:  "Tension-type headache",
			Plan:        "Hydration, OTC analgesics",
			Medications: []string{"ibuprofen 400mg"},
			FollowUp:    "Return in two weeks if persistent",
		},
		PatientSummary: &consult.PatientSummary{
			Summary:     "We talked about your headaches.",
			KeyPoints:   []string{"Headaches are likely tension-related"},
			NextSteps:   []string{"Drink more water", "Take ibuprofen as needed"},
			Medications: []string{"ibuprofen"},
		},
		Status: consult.StatusCompleted,
	}
}

// runStoreTests exercises the Store contract against any implementation.
func runStoreTests(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("get missing returns not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, consult.ErrNotFound)
	})

	t.Run("put and get round trip", func(t *testing.T) {
		want := sampleSession("abc-123")
		require.NoError(t, store.Put(ctx, want))

		got, err := store.GetByID(ctx, "abc-123")
		require.NoError(t, err)
		assert.Equal(t, want.PatientName, got.PatientName)
		assert.Equal(t, want.Duration, got.Duration)
		require.NotNil(t, got.ClinicalNotes)
		assert.Equal(t, "Tension-type headache", got.ClinicalNotes.Assessment)
		require.NotNil(t, got.PatientSummary)
		assert.Equal(t, []string{"Drink more water", "Take ibuprofen as needed"}, got.PatientSummary.NextSteps)
		assert.False(t, got.Fallback)
	})

	t.Run("put without summary stays absent", func(t *testing.T) {
		s := sampleSession("no-summary")
		s.PatientSummary = nil
		require.NoError(t, store.Put(ctx, s))

		got, err := store.GetByID(ctx, "no-summary")
		require.NoError(t, err)
		assert.Nil(t, got.PatientSummary)
	})

	t.Run("last writer wins", func(t *testing.T) {
		first := sampleSession("dup")
		require.NoError(t, store.Put(ctx, first))

		second := sampleSession("dup")
		second.Transcription = "Amended transcription."
		require.NoError(t, store.Put(ctx, second))

		got, err := store.GetByID(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, "Amended transcription.", got.Transcription)

		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		count := 0
		for _, s := range all {
			if s.ID == "dup" {
				count++
			}
		}
		assert.Equal(t, 1, count, "overwrite must not duplicate the record")
	})

	t.Run("get all returns every record", func(t *testing.T) {
		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 3)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, sampleSession("to-delete")))
		require.NoError(t, store.Delete(ctx, "to-delete"))

		_, err := store.GetByID(ctx, "to-delete")
		assert.ErrorIs(t, err, consult.ErrNotFound)

		assert.ErrorIs(t, store.Delete(ctx, "to-delete"), consult.ErrNotFound)
	})
}

func TestInMemoryStore(t *testing.T) {
	runStoreTests(t, NewInMemoryStore())
}

func TestInMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	original := sampleSession("copy-check")
	require.NoError(t, store.Put(ctx, original))

	// Mutating the original after Put must not affect the stored record
	original.Transcription = "mutated"

	got, err := store.GetByID(ctx, "copy-check")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", got.Transcription)
}

func TestDBStoreSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "medscribe.db")
	store, err := NewDBStore(dsn)
	require.NoError(t, err)
	defer store.Close()

	runStoreTests(t, store)
}
