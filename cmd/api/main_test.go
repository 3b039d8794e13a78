package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	mem "patient-history/internal/adapters/storage/memory"
	"patient-history/internal/config"
	"patient-history/internal/domain/history"
	"patient-history/internal/router"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCmd_ListByPatient(t *testing.T) {
	repo := mem.NewHistoryRepo()
	_, err := repo.Save(context.Background(), history.Record{ID: "1", PatientID: 1, PatientName: "Doe"})
	require.NoError(t, err)

	ts := httptest.NewServer(router.NewRouter(router.Options{Logger: zerolog.Nop(), HistoryRepo: repo}))
	defer ts.Close()

	cmd := clientCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "--url", ts.URL, "--patient", "1"})
	require.NoError(t, cmd.Execute())

	var got []history.Transfer
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Doe", got[0].PatientName)
}

func TestClientCmd_GetMissingFails(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Logger: zerolog.Nop()}))
	defer ts.Close()

	cmd := clientCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"get", "missing", "--url", ts.URL})

	err := cmd.Execute()
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestOpenHistoryStore_MemoryByDefault(t *testing.T) {
	repo, closeStore, err := openHistoryStore(context.Background(), &config.Config{Port: "8080"})
	require.NoError(t, err)
	defer closeStore()

	saved, err := repo.Save(context.Background(), history.Record{PatientID: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestMigrateHistoryStore_MemoryIsNoop(t *testing.T) {
	driver, err := migrateHistoryStore(context.Background(), &config.Config{Port: "8080"})
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, driver)
}
