package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 并发地往不同段写入：任何一方的写都不能覆盖掉另一方。
// 重新从磁盘加载的 repo 必须同时看到两边的新记录
func TestConcurrentWritesAcrossSectionsAreNotLost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"persons": [], "firestations": [], "medicalrecords": []}`), 0o644))
	st := store.NewDocumentStore(path, zap.NewNop())

	persons, err := NewPersonsRepo(st, zap.NewNop())
	require.NoError(t, err)
	stations, err := NewFireStationsRepo(st, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	const n = 10

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_, err := persons.Create(ctx, domain.Person{
				FirstName: fmt.Sprintf("First%d", i), LastName: "Concurrent",
				Address: "1509 Culver St",
			})
			require.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_, err := stations.Create(ctx, domain.FireStation{
				Address: fmt.Sprintf("%d Test St", i), Station: "1",
			})
			require.NoError(t, err)
		}
	}()
	wg.Wait()

	// 从磁盘全新加载
	freshPersons, err := NewPersonsRepo(st, zap.NewNop())
	require.NoError(t, err)
	freshStations, err := NewFireStationsRepo(st, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, freshPersons.FindAll(ctx), n)
	require.Len(t, freshStations.FindAll(ctx), n)
}
