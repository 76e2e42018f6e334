package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"safetynet-alerts/internal/repository"
	"safetynet-alerts/internal/service"
	"safetynet-alerts/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 端到端测试用的小镇。出生日期选得离儿童阈值足够远，
// 断言不依赖测试运行的具体日期
const townDocForHandlerTest = `{
	"persons": [
		{"firstName": "Tom", "lastName": "Little", "address": "1 Apple St", "city": "Culver", "zip": "97451", "phone": "841-874-0001", "email": "tom@email.com"},
		{"firstName": "Anna", "lastName": "Little", "address": "1 Apple St", "city": "Culver", "zip": "97451", "phone": "841-874-0001", "email": "anna@email.com"},
		{"firstName": "Bob", "lastName": "Stone", "address": "2 Beach Rd", "city": "Culver", "zip": "97451", "phone": "841-874-0002", "email": "bob@email.com"}
	],
	"firestations": [
		{"address": "1 Apple St", "station": "1"},
		{"address": "2 Beach Rd", "station": "1"},
		{"address": "3 Cliff Way", "station": "2"}
	],
	"medicalrecords": [
		{"firstName": "Tom", "lastName": "Little", "birthdate": "01/01/2020", "medications": [], "allergies": ["peanut"]},
		{"firstName": "Anna", "lastName": "Little", "birthdate": "01/01/1980", "medications": ["aznol:350mg"], "allergies": []},
		{"firstName": "Bob", "lastName": "Stone", "birthdate": "01/01/1980", "medications": [], "allergies": []}
	]
}`

func newHandlerForTest(t *testing.T) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(townDocForHandlerTest), 0o644))
	st := store.NewDocumentStore(path, zap.NewNop())

	persons, err := repository.NewPersonsRepo(st, zap.NewNop())
	require.NoError(t, err)
	stations, err := repository.NewFireStationsRepo(st, zap.NewNop())
	require.NoError(t, err)
	records, err := repository.NewMedicalRecordsRepo(st, zap.NewNop())
	require.NoError(t, err)

	cache := service.NewViewCache(store.NewMemoryKV(), time.Minute, zap.NewNop())
	medicalRecordService := service.NewMedicalRecordService(records, cache, zap.NewNop())
	personService := service.NewPersonService(persons, medicalRecordService, cache, zap.NewNop())
	fireStationService := service.NewFireStationService(stations, personService, medicalRecordService, cache, zap.NewNop())

	router := NewRouter(zap.NewNop())
	router.RegisterPersonRoutes(NewPersonHandler(personService, zap.NewNop()))
	router.RegisterFireStationRoutes(NewFireStationHandler(fireStationService, zap.NewNop()))
	router.RegisterMedicalRecordRoutes(NewMedicalRecordHandler(medicalRecordService, zap.NewNop()))
	return router
}
