package repository

import (
	"context"
	"fmt"
	"sync"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/store"

	"go.uber.org/zap"
)

const medicalRecordsSection = "medicalrecords"

// MedicalRecordsRepo 医疗档案目录，身份键 (firstName, lastName)
type MedicalRecordsRepo struct {
	mu      sync.RWMutex
	records []domain.MedicalRecord
	store   *store.DocumentStore
	logger  *zap.Logger
}

func NewMedicalRecordsRepo(st *store.DocumentStore, logger *zap.Logger) (*MedicalRecordsRepo, error) {
	r := &MedicalRecordsRepo{store: st, logger: logger}

	var loaded []domain.MedicalRecord
	if err := st.Section(medicalRecordsSection, &loaded); err != nil {
		return nil, fmt.Errorf("loading medical records: %w", err)
	}

	seen := make(map[fullNameKey]struct{}, len(loaded))
	for _, m := range loaded {
		key := fullNameKey{first: m.FirstName, last: m.LastName}
		if _, dup := seen[key]; dup {
			logger.Warn("duplicate medical record dropped", zap.String("fullName", m.FullName()))
			continue
		}
		seen[key] = struct{}{}
		r.records = append(r.records, m)
	}

	if len(r.records) != len(loaded) {
		if err := st.ReplaceSection(medicalRecordsSection, r.records); err != nil {
			return nil, fmt.Errorf("persisting deduplicated medical records: %w", err)
		}
	}

	logger.Debug("medical records loaded", zap.Int("count", len(r.records)))
	return r, nil
}

func (r *MedicalRecordsRepo) FindAll(_ context.Context) []domain.MedicalRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MedicalRecord, len(r.records))
	copy(out, r.records)
	return out
}

// FindByFullName 按 (firstName, lastName) 精确查找，未命中返回 nil
func (r *MedicalRecordsRepo) FindByFullName(_ context.Context, firstName, lastName string) *domain.MedicalRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].FirstName == firstName && r.records[i].LastName == lastName {
			m := r.records[i]
			return &m
		}
	}
	return nil
}

func (r *MedicalRecordsRepo) Create(_ context.Context, record domain.MedicalRecord) (*domain.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].FirstName == record.FirstName && r.records[i].LastName == record.LastName {
			return nil, fmt.Errorf("medical record %s: %w", record.FullName(), ErrAlreadyExists)
		}
	}
	next := append(append([]domain.MedicalRecord{}, r.records...), record)
	if err := r.store.ReplaceSection(medicalRecordsSection, next); err != nil {
		return nil, err
	}
	r.records = next
	r.logger.Info("medical record created", zap.String("fullName", record.FullName()))
	return &record, nil
}

func (r *MedicalRecordsRepo) Update(_ context.Context, record domain.MedicalRecord) (*domain.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].FirstName == record.FirstName && r.records[i].LastName == record.LastName {
			next := append([]domain.MedicalRecord{}, r.records...)
			next[i] = record
			if err := r.store.ReplaceSection(medicalRecordsSection, next); err != nil {
				return nil, err
			}
			r.records = next
			r.logger.Info("medical record updated", zap.String("fullName", record.FullName()))
			return &record, nil
		}
	}
	return nil, fmt.Errorf("medical record %s %s: %w", record.FirstName, record.LastName, ErrNotFound)
}

func (r *MedicalRecordsRepo) Delete(_ context.Context, firstName, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].FirstName == firstName && r.records[i].LastName == lastName {
			next := append(append([]domain.MedicalRecord{}, r.records[:i]...), r.records[i+1:]...)
			if err := r.store.ReplaceSection(medicalRecordsSection, next); err != nil {
				return err
			}
			r.records = next
			r.logger.Info("medical record deleted", zap.String("fullName", firstName+" "+lastName))
			return nil
		}
	}
	return fmt.Errorf("medical record %s %s: %w", firstName, lastName, ErrNotFound)
}
