package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"safetynet-alerts/internal/repository"
	"safetynet-alerts/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 服务层共用的小镇：站 1 覆盖两处地址，站 2 覆盖一处无人居住的地址。
// Little 一家共用电话号码，phoneAlert 去重用。
const townDocForTest = `{
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
		{"firstName": "Tom", "lastName": "Little", "birthdate": "06/03/2014", "medications": [], "allergies": ["peanut"]},
		{"firstName": "Anna", "lastName": "Little", "birthdate": "06/03/1984", "medications": ["aznol:350mg"], "allergies": []},
		{"firstName": "Bob", "lastName": "Stone", "birthdate": "06/03/1984", "medications": [], "allergies": []}
	]
}`

// nowForTest 固定"今天"，让推导年龄可断言：Tom 10 岁，Anna/Bob 40 岁
var nowForTest = time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

type servicesForTest struct {
	person        *PersonService
	fireStation   *FireStationService
	medicalRecord *MedicalRecordService
	kv            *store.MemoryKV
}

func newServicesForTest(t *testing.T, doc string) *servicesForTest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	st := store.NewDocumentStore(path, zap.NewNop())

	persons, err := repository.NewPersonsRepo(st, zap.NewNop())
	require.NoError(t, err)
	stations, err := repository.NewFireStationsRepo(st, zap.NewNop())
	require.NoError(t, err)
	records, err := repository.NewMedicalRecordsRepo(st, zap.NewNop())
	require.NoError(t, err)

	kv := store.NewMemoryKV()
	cache := NewViewCache(kv, time.Minute, zap.NewNop())

	medicalRecord := NewMedicalRecordService(records, cache, zap.NewNop())
	medicalRecord.now = func() time.Time { return nowForTest }
	person := NewPersonService(persons, medicalRecord, cache, zap.NewNop())
	fireStation := NewFireStationService(stations, person, medicalRecord, cache, zap.NewNop())

	return &servicesForTest{
		person:        person,
		fireStation:   fireStation,
		medicalRecord: medicalRecord,
		kv:            kv,
	}
}
