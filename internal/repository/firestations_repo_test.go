package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStoreForStations(t *testing.T, doc string) *store.DocumentStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return store.NewDocumentStore(path, zap.NewNop())
}

const stationsDocForTest = `{
	"persons": [],
	"firestations": [
		{"address": "1509 Culver St", "station": "3"},
		{"address": "29 15th St", "station": "2"},
		{"address": "834 Binoc Ave", "station": "3"}
	],
	"medicalrecords": []
}`

func TestFireStationsRepo_DedupByAddressFirstWins(t *testing.T) {
	st := newStoreForStations(t, `{
		"persons": [],
		"firestations": [
			{"address": "1509 Culver St", "station": "3"},
			{"address": "1509 Culver St", "station": "7"}
		],
		"medicalrecords": []
	}`)
	repo, err := NewFireStationsRepo(st, zap.NewNop())
	require.NoError(t, err)

	all := repo.FindAll(context.Background())
	require.Len(t, all, 1)
	require.Equal(t, "3", all[0].Station)
}

func TestFireStationsRepo_CoveredAddressesInsertionOrder(t *testing.T) {
	repo, err := NewFireStationsRepo(newStoreForStations(t, stationsDocForTest), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.Equal(t, []string{"1509 Culver St", "834 Binoc Ave"}, repo.CoveredAddresses(ctx, "3"))
	// 未知站号是空列表，不是错误
	require.Empty(t, repo.CoveredAddresses(ctx, "9"))
}

func TestFireStationsRepo_StationNumber(t *testing.T) {
	repo, err := NewFireStationsRepo(newStoreForStations(t, stationsDocForTest), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	n, err := repo.StationNumber(ctx, "29 15th St")
	require.NoError(t, err)
	require.Equal(t, "2", n)

	_, err = repo.StationNumber(ctx, "unknown address")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFireStationsRepo_CRUD(t *testing.T) {
	st := newStoreForStations(t, stationsDocForTest)
	repo, err := NewFireStationsRepo(st, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Create(ctx, domain.FireStation{Address: "112 Steppes Pl", Station: "4"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.FireStation{Address: "112 Steppes Pl", Station: "5"})
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = repo.Update(ctx, domain.FireStation{Address: "29 15th St", Station: "8"})
	require.NoError(t, err)
	n, err := repo.StationNumber(ctx, "29 15th St")
	require.NoError(t, err)
	require.Equal(t, "8", n)

	require.NoError(t, repo.Delete(ctx, "834 Binoc Ave"))
	require.ErrorIs(t, repo.Delete(ctx, "834 Binoc Ave"), ErrNotFound)

	// 重启后三处变更都在
	fresh, err := NewFireStationsRepo(st, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, fresh.FindAll(ctx), 3)
	require.Nil(t, fresh.FindByAddress(ctx, "834 Binoc Ave"))
}
