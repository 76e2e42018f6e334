package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/repository"

	"go.uber.org/zap"
)

// ErrInvalidBirthdate 档案里的出生日期无法按 dd/mm/yyyy 解析（InvalidInput，不降级）
var ErrInvalidBirthdate = errors.New("invalid birthdate")

// birthdateLayout 存储契约固定 dd/mm/yyyy
const birthdateLayout = "02/01/2006"

// childAgeLimit 年龄 <= 18 算儿童（含 18）
const childAgeLimit = 18

// MedicalRecordService 医疗档案的 CRUD 与年龄推导。
// 年龄从不落盘：每次读取按 now 重新计算，同一份档案在不同日期会得到不同年龄。
type MedicalRecordService struct {
	records *repository.MedicalRecordsRepo
	cache   *ViewCache
	logger  *zap.Logger

	// now 可注入，测试固定"今天"
	now func() time.Time
}

func NewMedicalRecordService(records *repository.MedicalRecordsRepo, cache *ViewCache, logger *zap.Logger) *MedicalRecordService {
	return &MedicalRecordService{
		records: records,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *MedicalRecordService) GetMedicalRecords(ctx context.Context) []domain.MedicalRecord {
	return s.records.FindAll(ctx)
}

func (s *MedicalRecordService) GetOneMedicalRecord(ctx context.Context, firstName, lastName string) (*domain.MedicalRecord, error) {
	record := s.records.FindByFullName(ctx, firstName, lastName)
	if record == nil {
		return nil, fmt.Errorf("medical record for %s %s: %w", firstName, lastName, repository.ErrNotFound)
	}
	return record, nil
}

// GetAge 按档案出生日期推导年龄：floor(abs(now - birthdate) 的天数 / 365)。
// 不做闰年/日历修正，沿用存量行为，勿"修正"。
func (s *MedicalRecordService) GetAge(ctx context.Context, firstName, lastName string) (int64, error) {
	record, err := s.GetOneMedicalRecord(ctx, firstName, lastName)
	if err != nil {
		return 0, err
	}
	birthdate, err := time.Parse(birthdateLayout, record.Birthdate)
	if err != nil {
		return 0, fmt.Errorf("%w: %q for %s %s", ErrInvalidBirthdate, record.Birthdate, firstName, lastName)
	}
	diff := s.now().Sub(birthdate)
	if diff < 0 {
		diff = -diff
	}
	days := int64(diff.Hours()) / 24
	age := days / 365
	s.logger.Debug("age derived",
		zap.String("fullName", firstName+" "+lastName),
		zap.Int64("age", age))
	return age, nil
}

// IsChild 年龄 <= 18（含）为儿童
func (s *MedicalRecordService) IsChild(ctx context.Context, firstName, lastName string) (bool, error) {
	age, err := s.GetAge(ctx, firstName, lastName)
	if err != nil {
		return false, err
	}
	return age <= childAgeLimit, nil
}

// medicalRecordDTO 档案投影；档案缺失时返回空投影（聚合视图里按无用药/无过敏展示）
func (s *MedicalRecordService) medicalRecordDTO(ctx context.Context, firstName, lastName string) MedicalRecordDTO {
	dto := MedicalRecordDTO{Medicine: []string{}, Allergies: []string{}}
	record := s.records.FindByFullName(ctx, firstName, lastName)
	if record == nil {
		return dto
	}
	dto.Medicine = append(dto.Medicine, record.Medications...)
	dto.Allergies = append(dto.Allergies, record.Allergies...)
	return dto
}

func (s *MedicalRecordService) CreateMedicalRecord(ctx context.Context, record domain.MedicalRecord) (*domain.MedicalRecord, error) {
	created, err := s.records.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

func (s *MedicalRecordService) UpdateMedicalRecord(ctx context.Context, record domain.MedicalRecord) (*domain.MedicalRecord, error) {
	updated, err := s.records.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

func (s *MedicalRecordService) DeleteMedicalRecord(ctx context.Context, firstName, lastName string) error {
	if err := s.records.Delete(ctx, firstName, lastName); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
