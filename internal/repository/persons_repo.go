package repository

import (
	"context"
	"fmt"
	"sync"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/store"

	"go.uber.org/zap"
)

const personsSection = "persons"

// PersonsRepo 居民目录。
// 构造时从数据文件加载 "persons" 段并按全名去重（first wins），
// 之后内存列表是该段唯一的真实来源；每次变更整段回写。
type PersonsRepo struct {
	mu      sync.RWMutex
	persons []domain.Person
	store   *store.DocumentStore
	logger  *zap.Logger
}

func NewPersonsRepo(st *store.DocumentStore, logger *zap.Logger) (*PersonsRepo, error) {
	r := &PersonsRepo{store: st, logger: logger}

	var loaded []domain.Person
	if err := st.Section(personsSection, &loaded); err != nil {
		return nil, fmt.Errorf("loading persons: %w", err)
	}

	seen := make(map[fullNameKey]struct{}, len(loaded))
	for _, p := range loaded {
		key := fullNameKey{first: p.FirstName, last: p.LastName}
		if _, dup := seen[key]; dup {
			logger.Warn("duplicate person dropped", zap.String("fullName", p.FullName()))
			continue
		}
		seen[key] = struct{}{}
		r.persons = append(r.persons, p)
	}

	// 去重后立即回写，使磁盘与内存在任何显式变更之前就已一致
	if len(r.persons) != len(loaded) {
		if err := st.ReplaceSection(personsSection, r.persons); err != nil {
			return nil, fmt.Errorf("persisting deduplicated persons: %w", err)
		}
	}

	logger.Debug("persons loaded", zap.Int("count", len(r.persons)))
	return r, nil
}

// FindAll 返回列表快照（副本），调用方可随意遍历
func (r *PersonsRepo) FindAll(_ context.Context) []domain.Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Person, len(r.persons))
	copy(out, r.persons)
	return out
}

// FindByFullName 按 (firstName, lastName) 精确查找，未命中返回 nil
func (r *PersonsRepo) FindByFullName(_ context.Context, firstName, lastName string) *domain.Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.persons {
		if r.persons[i].FirstName == firstName && r.persons[i].LastName == lastName {
			p := r.persons[i]
			return &p
		}
	}
	return nil
}

func (r *PersonsRepo) FindByLastName(_ context.Context, lastName string) []domain.Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Person
	for _, p := range r.persons {
		if p.LastName == lastName {
			out = append(out, p)
		}
	}
	return out
}

func (r *PersonsRepo) FindByAddress(_ context.Context, address string) []domain.Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Person
	for _, p := range r.persons {
		if p.Address == address {
			out = append(out, p)
		}
	}
	return out
}

func (r *PersonsRepo) FindByCity(_ context.Context, city string) []domain.Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Person
	for _, p := range r.persons {
		if p.City == city {
			out = append(out, p)
		}
	}
	return out
}

// Create 追加新居民并落盘，身份键冲突返回 ErrAlreadyExists
func (r *PersonsRepo) Create(_ context.Context, person domain.Person) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.persons {
		if r.persons[i].FirstName == person.FirstName && r.persons[i].LastName == person.LastName {
			return nil, fmt.Errorf("person %s: %w", person.FullName(), ErrAlreadyExists)
		}
	}
	next := append(append([]domain.Person{}, r.persons...), person)
	if err := r.store.ReplaceSection(personsSection, next); err != nil {
		return nil, err
	}
	r.persons = next
	r.logger.Info("person created", zap.String("fullName", person.FullName()))
	return &person, nil
}

// Update 原位替换（保持列表位置）并落盘，未命中返回 ErrNotFound
func (r *PersonsRepo) Update(_ context.Context, person domain.Person) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.persons {
		if r.persons[i].FirstName == person.FirstName && r.persons[i].LastName == person.LastName {
			next := append([]domain.Person{}, r.persons...)
			next[i] = person
			if err := r.store.ReplaceSection(personsSection, next); err != nil {
				return nil, err
			}
			r.persons = next
			r.logger.Info("person updated", zap.String("fullName", person.FullName()))
			return &person, nil
		}
	}
	return nil, fmt.Errorf("person %s %s: %w", person.FirstName, person.LastName, ErrNotFound)
}

// Delete 按身份键删除并落盘，未命中返回 ErrNotFound
func (r *PersonsRepo) Delete(_ context.Context, firstName, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.persons {
		if r.persons[i].FirstName == firstName && r.persons[i].LastName == lastName {
			next := append(append([]domain.Person{}, r.persons[:i]...), r.persons[i+1:]...)
			if err := r.store.ReplaceSection(personsSection, next); err != nil {
				return err
			}
			r.persons = next
			r.logger.Info("person deleted", zap.String("fullName", firstName+" "+lastName))
			return nil
		}
	}
	return fmt.Errorf("person %s %s: %w", firstName, lastName, ErrNotFound)
}
