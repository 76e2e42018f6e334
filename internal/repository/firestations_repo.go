package repository

import (
	"context"
	"fmt"
	"sync"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/store"

	"go.uber.org/zap"
)

const fireStationsSection = "firestations"

// FireStationsRepo 消防站覆盖目录。
// 身份键是 address：加载时同地址的后续条目按录入错误丢弃（first wins）
type FireStationsRepo struct {
	mu       sync.RWMutex
	stations []domain.FireStation
	store    *store.DocumentStore
	logger   *zap.Logger
}

func NewFireStationsRepo(st *store.DocumentStore, logger *zap.Logger) (*FireStationsRepo, error) {
	r := &FireStationsRepo{store: st, logger: logger}

	var loaded []domain.FireStation
	if err := st.Section(fireStationsSection, &loaded); err != nil {
		return nil, fmt.Errorf("loading fire stations: %w", err)
	}

	seen := make(map[string]struct{}, len(loaded))
	for _, fs := range loaded {
		if _, dup := seen[fs.Address]; dup {
			logger.Warn("duplicate fire station address dropped", zap.String("address", fs.Address))
			continue
		}
		seen[fs.Address] = struct{}{}
		r.stations = append(r.stations, fs)
	}

	if len(r.stations) != len(loaded) {
		if err := st.ReplaceSection(fireStationsSection, r.stations); err != nil {
			return nil, fmt.Errorf("persisting deduplicated fire stations: %w", err)
		}
	}

	logger.Debug("fire stations loaded", zap.Int("count", len(r.stations)))
	return r, nil
}

func (r *FireStationsRepo) FindAll(_ context.Context) []domain.FireStation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.FireStation, len(r.stations))
	copy(out, r.stations)
	return out
}

// FindByAddress 按地址精确查找，未命中返回 nil
func (r *FireStationsRepo) FindByAddress(_ context.Context, address string) *domain.FireStation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.stations {
		if r.stations[i].Address == address {
			fs := r.stations[i]
			return &fs
		}
	}
	return nil
}

// CoveredAddresses 给定站号覆盖的全部地址，保持插入顺序。
// 没有匹配返回空列表而不是错误；空列表是否算 NotFound 由服务层决定。
func (r *FireStationsRepo) CoveredAddresses(_ context.Context, stationNumber string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var addresses []string
	for _, fs := range r.stations {
		if fs.Station == stationNumber {
			addresses = append(addresses, fs.Address)
		}
	}
	return addresses
}

// StationNumber 覆盖给定地址的站号，地址未被覆盖返回 ErrNotFound
func (r *FireStationsRepo) StationNumber(_ context.Context, address string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, fs := range r.stations {
		if fs.Address == address {
			return fs.Station, nil
		}
	}
	return "", fmt.Errorf("fire station for address %q: %w", address, ErrNotFound)
}

func (r *FireStationsRepo) Create(_ context.Context, station domain.FireStation) (*domain.FireStation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.stations {
		if r.stations[i].Address == station.Address {
			return nil, fmt.Errorf("fire station %q: %w", station.Address, ErrAlreadyExists)
		}
	}
	next := append(append([]domain.FireStation{}, r.stations...), station)
	if err := r.store.ReplaceSection(fireStationsSection, next); err != nil {
		return nil, err
	}
	r.stations = next
	r.logger.Info("fire station created", zap.String("address", station.Address), zap.String("station", station.Station))
	return &station, nil
}

func (r *FireStationsRepo) Update(_ context.Context, station domain.FireStation) (*domain.FireStation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.stations {
		if r.stations[i].Address == station.Address {
			next := append([]domain.FireStation{}, r.stations...)
			next[i] = station
			if err := r.store.ReplaceSection(fireStationsSection, next); err != nil {
				return nil, err
			}
			r.stations = next
			r.logger.Info("fire station updated", zap.String("address", station.Address), zap.String("station", station.Station))
			return &station, nil
		}
	}
	return nil, fmt.Errorf("fire station %q: %w", station.Address, ErrNotFound)
}

func (r *FireStationsRepo) Delete(_ context.Context, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.stations {
		if r.stations[i].Address == address {
			next := append(append([]domain.FireStation{}, r.stations[:i]...), r.stations[i+1:]...)
			if err := r.store.ReplaceSection(fireStationsSection, next); err != nil {
				return err
			}
			r.stations = next
			r.logger.Info("fire station deleted", zap.String("address", address))
			return nil
		}
	}
	return fmt.Errorf("fire station %q: %w", address, ErrNotFound)
}
