package service

import (
	"context"
	"fmt"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/repository"

	"go.uber.org/zap"
)

// PersonService 居民 CRUD 与按姓氏/地址/城市的聚合视图
type PersonService struct {
	persons       *repository.PersonsRepo
	medicalRecord *MedicalRecordService
	cache         *ViewCache
	logger        *zap.Logger
}

func NewPersonService(persons *repository.PersonsRepo, medicalRecord *MedicalRecordService, cache *ViewCache, logger *zap.Logger) *PersonService {
	return &PersonService{
		persons:       persons,
		medicalRecord: medicalRecord,
		cache:         cache,
		logger:        logger,
	}
}

func (s *PersonService) GetPersons(ctx context.Context) []domain.Person {
	return s.persons.FindAll(ctx)
}

func (s *PersonService) GetOnePerson(ctx context.Context, firstName, lastName string) (*domain.Person, error) {
	person := s.persons.FindByFullName(ctx, firstName, lastName)
	if person == nil {
		return nil, fmt.Errorf("person %s %s: %w", firstName, lastName, repository.ErrNotFound)
	}
	return person, nil
}

// GetPersonsByLastName /personInfo 视图：同姓氏全部居民的地址、年龄、邮箱、档案。
// 无人匹配返回 ErrNotFound。
func (s *PersonService) GetPersonsByLastName(ctx context.Context, lastName string) ([]PersonInfoLastNameDTO, error) {
	matches := s.persons.FindByLastName(ctx, lastName)
	if len(matches) == 0 {
		return nil, fmt.Errorf("persons named %q: %w", lastName, repository.ErrNotFound)
	}

	out := make([]PersonInfoLastNameDTO, 0, len(matches))
	for _, p := range matches {
		age, err := s.medicalRecord.GetAge(ctx, p.FirstName, p.LastName)
		if err != nil {
			return nil, err
		}
		out = append(out, PersonInfoLastNameDTO{
			LastName:      p.LastName,
			Address:       p.Address,
			Age:           age,
			Mail:          p.Email,
			MedicalRecord: s.medicalRecord.medicalRecordDTO(ctx, p.FirstName, p.LastName),
		})
	}
	s.logger.Info("person info list built", zap.String("lastName", lastName), zap.Int("count", len(out)))
	return out, nil
}

// GetPersonsByAddress 地址上的居民；查无此人返回 ErrNotFound
func (s *PersonService) GetPersonsByAddress(ctx context.Context, address string) ([]domain.Person, error) {
	matches := s.persons.FindByAddress(ctx, address)
	if len(matches) == 0 {
		return nil, fmt.Errorf("persons at address %q: %w", address, repository.ErrNotFound)
	}
	return matches, nil
}

// CreateChildAlertList /childAlert 视图：按推导年龄把地址上的居民分成儿童/其他成员。
// 地址查无此人是 NotFound；有人但没有儿童是合法结果（childList 为空）。
func (s *PersonService) CreateChildAlertList(ctx context.Context, address string) (*ChildAlertDTO, error) {
	personsAtThisAddress, err := s.GetPersonsByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	alert := &ChildAlertDTO{
		ChildList:        []FullNameAndAgeDTO{},
		OtherMembersList: []FullNameAndAgeDTO{},
	}
	for _, p := range personsAtThisAddress {
		age, err := s.medicalRecord.GetAge(ctx, p.FirstName, p.LastName)
		if err != nil {
			return nil, err
		}
		entry := FullNameAndAgeDTO{FirstName: p.FirstName, LastName: p.LastName, Age: age}
		if age <= childAgeLimit {
			alert.ChildList = append(alert.ChildList, entry)
		} else {
			alert.OtherMembersList = append(alert.OtherMembersList, entry)
		}
	}
	if len(alert.ChildList) == 0 {
		s.logger.Info("no child at address", zap.String("address", address))
	}
	s.logger.Info("child alert built",
		zap.String("address", address),
		zap.Int("children", len(alert.ChildList)),
		zap.Int("others", len(alert.OtherMembersList)))
	return alert, nil
}

// GetPersonsEmails /communityEmail 视图：城市内全部居民邮箱，不去重。
// 城市无人匹配返回 ErrNotFound。
func (s *PersonService) GetPersonsEmails(ctx context.Context, city string) ([]string, error) {
	emails := []string{}
	for _, p := range s.persons.FindByCity(ctx, city) {
		emails = append(emails, p.Email)
	}
	if len(emails) == 0 {
		return nil, fmt.Errorf("emails for city %q: %w", city, repository.ErrNotFound)
	}
	s.logger.Info("community email list built", zap.String("city", city), zap.Int("count", len(emails)))
	return emails, nil
}

// personsAtAddress fire / flood 共用的住户投影，空列表不算错误（由调用方定策略）
func (s *PersonService) personsAtAddress(ctx context.Context, address string) ([]PersonAtThisAddressDTO, error) {
	out := []PersonAtThisAddressDTO{}
	for _, p := range s.persons.FindByAddress(ctx, address) {
		age, err := s.medicalRecord.GetAge(ctx, p.FirstName, p.LastName)
		if err != nil {
			return nil, err
		}
		out = append(out, PersonAtThisAddressDTO{
			LastName:      p.LastName,
			Phone:         p.Phone,
			Age:           age,
			MedicalRecord: s.medicalRecord.medicalRecordDTO(ctx, p.FirstName, p.LastName),
		})
	}
	return out, nil
}

func (s *PersonService) CreatePerson(ctx context.Context, person domain.Person) (*domain.Person, error) {
	created, err := s.persons.Create(ctx, person)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

func (s *PersonService) UpdatePerson(ctx context.Context, person domain.Person) (*domain.Person, error) {
	updated, err := s.persons.Update(ctx, person)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

func (s *PersonService) DeleteOnePerson(ctx context.Context, firstName, lastName string) error {
	if err := s.persons.Delete(ctx, firstName, lastName); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
