package service

import (
	"context"
	"fmt"
	"sort"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/repository"

	"go.uber.org/zap"
)

// FireStationService 消防站 CRUD 与覆盖类聚合视图。
// 空结果策略（全引擎一致）：
//   - coverage / phoneAlert / flood 对未知或空站号返回空结果，不报错
//   - fire 对未覆盖地址或无人居住的地址返回 NotFound
type FireStationService struct {
	stations      *repository.FireStationsRepo
	person        *PersonService
	medicalRecord *MedicalRecordService
	cache         *ViewCache
	logger        *zap.Logger
}

func NewFireStationService(stations *repository.FireStationsRepo, person *PersonService, medicalRecord *MedicalRecordService, cache *ViewCache, logger *zap.Logger) *FireStationService {
	return &FireStationService{
		stations:      stations,
		person:        person,
		medicalRecord: medicalRecord,
		cache:         cache,
		logger:        logger,
	}
}

func (s *FireStationService) GetFireStations(ctx context.Context) []domain.FireStation {
	return s.stations.FindAll(ctx)
}

// CreateFireStationPersonsList /firestation 覆盖视图：
// 站号覆盖地址上的全部居民，按推导年龄计数儿童/成人
func (s *FireStationService) CreateFireStationPersonsList(ctx context.Context, stationNumber string) (*CoveredPersonsListDTO, error) {
	cacheKey := "coverage:" + stationNumber
	var cached CoveredPersonsListDTO
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	coveredAddresses := s.stations.CoveredAddresses(ctx, stationNumber)
	out := &CoveredPersonsListDTO{CoveredPersons: []PersonDTO{}}
	for _, address := range coveredAddresses {
		for _, p := range s.person.persons.FindByAddress(ctx, address) {
			child, err := s.medicalRecord.IsChild(ctx, p.FirstName, p.LastName)
			if err != nil {
				return nil, err
			}
			if child {
				out.ChildCount++
			} else {
				out.AdultsCount++
			}
			out.CoveredPersons = append(out.CoveredPersons, PersonDTO{
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Address:   p.Address,
				Phone:     p.Phone,
			})
		}
	}
	s.logger.Info("coverage built",
		zap.String("station", stationNumber),
		zap.Int("children", out.ChildCount),
		zap.Int("adults", out.AdultsCount))

	s.cache.PutJSON(ctx, cacheKey, out)
	return out, nil
}

// CreatePhoneList /phoneAlert 视图：覆盖地址上全部居民的电话号码，
// 集合语义去重（同户共用号码只出现一次），排序保证输出稳定
func (s *FireStationService) CreatePhoneList(ctx context.Context, stationNumber string) ([]string, error) {
	cacheKey := "phone:" + stationNumber
	var cached []string
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	set := map[string]struct{}{}
	for _, address := range s.stations.CoveredAddresses(ctx, stationNumber) {
		for _, p := range s.person.persons.FindByAddress(ctx, address) {
			set[p.Phone] = struct{}{}
		}
	}
	phones := make([]string, 0, len(set))
	for phone := range set {
		phones = append(phones, phone)
	}
	sort.Strings(phones)
	s.logger.Info("phone list built", zap.String("station", stationNumber), zap.Int("count", len(phones)))

	s.cache.PutJSON(ctx, cacheKey, phones)
	return phones, nil
}

// CreatePersonsListInCaseOfFire /fire 视图：地址对应的站号 + 住户档案投影。
// 地址未被任何站覆盖、或无人居住，都返回 NotFound。
func (s *FireStationService) CreatePersonsListInCaseOfFire(ctx context.Context, address string) (*PersonsListInCaseOfFireDTO, error) {
	stationNumber, err := s.stations.StationNumber(ctx, address)
	if err != nil {
		return nil, err
	}
	personsAtThisAddress, err := s.person.personsAtAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(personsAtThisAddress) == 0 {
		return nil, fmt.Errorf("persons at address %q: %w", address, repository.ErrNotFound)
	}
	s.logger.Info("fire view built",
		zap.String("address", address),
		zap.String("station", stationNumber),
		zap.Int("count", len(personsAtThisAddress)))
	return &PersonsListInCaseOfFireDTO{
		StationNumber:        stationNumber,
		PersonsAtThisAddress: personsAtThisAddress,
	}, nil
}

// CreateFloodAlertList /flood/stations 视图：按地址分组的住户档案投影。
// 覆盖不到地址的站号不贡献条目（记一条 warn），不是错误。
func (s *FireStationService) CreateFloodAlertList(ctx context.Context, stationNumbers []string) ([]FloodAlertDTO, error) {
	out := []FloodAlertDTO{}
	for _, station := range stationNumbers {
		coveredAddresses := s.stations.CoveredAddresses(ctx, station)
		if len(coveredAddresses) == 0 {
			s.logger.Warn("station covers no addresses", zap.String("station", station))
			continue
		}
		for _, address := range coveredAddresses {
			personsAtThisAddress, err := s.person.personsAtAddress(ctx, address)
			if err != nil {
				return nil, err
			}
			out = append(out, FloodAlertDTO{
				Address:                  address,
				PersonsAtThisAddressList: personsAtThisAddress,
			})
		}
	}
	s.logger.Info("flood alert built", zap.Strings("stations", stationNumbers), zap.Int("addresses", len(out)))
	return out, nil
}

func (s *FireStationService) CreateFireStation(ctx context.Context, station domain.FireStation) (*domain.FireStation, error) {
	created, err := s.stations.Create(ctx, station)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

func (s *FireStationService) UpdateFireStation(ctx context.Context, station domain.FireStation) (*domain.FireStation, error) {
	updated, err := s.stations.Update(ctx, station)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

func (s *FireStationService) DeleteFireStation(ctx context.Context, address string) error {
	if err := s.stations.Delete(ctx, address); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
