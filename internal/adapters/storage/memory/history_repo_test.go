package memory

import (
	"context"
	"testing"
	"time"

	"patient-history/internal/domain/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepo_SaveGeneratesIDAndUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepo()

	saved, err := repo.Save(ctx, history.Record{PatientID: 1, PatientName: "Doe"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	saved.Notes = "updated"
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "updated", all[0].Notes)
}

func TestHistoryRepo_FindByPatientID(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepo()

	day := time.Date(2000, 10, 10, 0, 0, 0, 0, time.UTC)
	_, _ = repo.Save(ctx, history.Record{ID: "b", PatientID: 1, CreationDate: day.AddDate(0, 0, 1)})
	_, _ = repo.Save(ctx, history.Record{ID: "a", PatientID: 1, CreationDate: day})
	_, _ = repo.Save(ctx, history.Record{ID: "c", PatientID: 2, CreationDate: day})

	got, err := repo.FindByPatientID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	none, err := repo.FindByPatientID(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestHistoryRepo_MissingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepo()

	_, err := repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, history.ErrNotFound)

	err = repo.DeleteByID(ctx, "nope")
	assert.ErrorIs(t, err, history.ErrNotFound)
}
