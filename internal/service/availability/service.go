package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	availabilityCache "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/cache/availability"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/availability/models"
)

// Service расписание провайдеров: какие слоты предлагаются по дням недели
type Service struct {
	repo    AvailabilityRepository
	cache   Cache // nil, если Redis выключен
	metrics Metrics
	logger  Logger
}

// NewService создает сервис расписаний; cache может быть nil
func NewService(repo AvailabilityRepository, cache Cache, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// SetAvailability целиком заменяет набор слотов провайдера на день недели
// Менять расписание может только сам провайдер
func (s *Service) SetAvailability(ctx context.Context, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("SetAvailability: provider=%d day=%s slots=%d", req.ProviderID, req.Day, len(req.TimeSlots))

	if req.ActorID != req.ProviderID {
		s.logger.Warn("SetAvailability: user=%d is not provider=%d", req.ActorID, req.ProviderID)
		return nil, domain.ErrNotOwner
	}

	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		return nil, err
	}

	slots := domain.TimeSlots(req.TimeSlots)
	if slots == nil {
		slots = domain.TimeSlots{}
	}
	if err := slots.Validate(); err != nil {
		s.logger.Warn("SetAvailability: invalid slots for provider=%d day=%s: %v", req.ProviderID, day, err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, &domain.ProviderAvailability{
		ProviderID: req.ProviderID,
		Day:        day,
		TimeSlots:  slots,
	})
	if err != nil {
		s.logger.Error("SetAvailability: repository error for provider=%d day=%s: %v", req.ProviderID, day, err)
		return nil, fmt.Errorf("%w: SetAvailability - repository error: %w", ErrInternal, err)
	}

	s.Invalidate(ctx, req.ProviderID, day)

	s.logger.Info("SetAvailability: provider=%d day=%s saved", req.ProviderID, day)
	return models.FromDomainAvailability(saved), nil
}

// GetAvailability слоты провайдера на день недели в порядке, в котором они были заданы
func (s *Service) GetAvailability(ctx context.Context, providerID int64, rawDay string) (*models.AvailabilityResponse, error) {
	day, err := domain.ParseWeekday(rawDay)
	if err != nil {
		return nil, err
	}

	availability, err := s.get(ctx, providerID, day)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAvailability(availability), nil
}

// GetDay расписание на день недели в доменной модели, через кэш
func (s *Service) GetDay(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error) {
	return s.get(ctx, providerID, day)
}

// GetProviderSchedule все дни расписания провайдера, с понедельника по воскресенье
func (s *Service) GetProviderSchedule(ctx context.Context, providerID int64) (*models.ProviderScheduleResponse, error) {
	list, err := s.repo.GetAllByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetProviderSchedule: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProviderSchedule - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSchedule(providerID, list), nil
}

// Invalidate сбрасывает запись кэша; ошибка только логируется
func (s *Service) Invalidate(ctx context.Context, providerID int64, day domain.Weekday) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, providerID, day); err != nil {
		s.logger.Warn("Invalidate: cache error for provider=%d day=%s: %v", providerID, day, err)
	}
}

// get читает через кэш; при недоступности Redis идет в Postgres
// Версия записи берется до чтения из Postgres: если расписание изменили
// между чтением и записью в кэш, устаревшая строка в кэш не попадет
func (s *Service) get(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error) {
	cacheable := s.cache != nil
	var version int64

	if cacheable {
		cached, err := s.cache.Get(ctx, providerID, day)
		switch {
		case err == nil:
			s.metrics.CacheResult("hit")
			return cached, nil
		case errors.Is(err, availabilityCache.ErrCacheMiss):
			s.metrics.CacheResult("miss")
		default:
			s.metrics.CacheResult("error")
			s.logger.Warn("GetAvailability: cache error for provider=%d day=%s: %v", providerID, day, err)
		}

		version, err = s.cache.Version(ctx, providerID, day)
		if err != nil {
			s.logger.Warn("GetAvailability: cache version unavailable for provider=%d day=%s: %v", providerID, day, err)
			cacheable = false
		}
	}

	availability, err := s.repo.GetByProviderAndDay(ctx, providerID, day)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return nil, domain.ErrAvailabilityNotSet
		}
		s.logger.Error("GetAvailability: repository error for provider=%d day=%s: %v", providerID, day, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %w", ErrInternal, err)
	}

	if cacheable {
		err := s.cache.Set(ctx, availability, version)
		switch {
		case errors.Is(err, availabilityCache.ErrStaleVersion):
			s.logger.Info("GetAvailability: skipped cache write for provider=%d day=%s, invalidated during read", providerID, day)
		case err != nil:
			s.logger.Warn("GetAvailability: cache write failed for provider=%d day=%s: %v", providerID, day, err)
		}
	}

	return availability, nil
}
