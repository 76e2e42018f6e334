package httpapi

import (
	"bytes"
	"testing"

	"safetynet-alerts/internal/service"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateCoverageRosterExport(t *testing.T) {
	coverage := &service.CoveredPersonsListDTO{
		ChildCount:  1,
		AdultsCount: 1,
		CoveredPersons: []service.PersonDTO{
			{FirstName: "Tom", LastName: "Little", Address: "1 Apple St", Phone: "841-874-0001"},
			{FirstName: "Anna", LastName: "Little", Address: "1 Apple St", Phone: "841-874-0001"},
		},
	}

	data, err := GenerateCoverageRosterExport("1", coverage)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Station 1")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	require.Equal(t, CoverageRosterHeader, rows[0][:4])
	require.Equal(t, "Tom", rows[1][0])
	require.Equal(t, "1 Apple St", rows[2][2])
}
