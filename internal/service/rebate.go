package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/metrics"
	"github.com/myfriendben/screener/internal/rebate"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// IncentiveFetcher loads raw incentives from the rebate provider.
type IncentiveFetcher interface {
	Fetch(ctx context.Context, q domain.RebateQuery) ([]domain.Incentive, error)
}

// RebateCache stores categorized results by encoded query.
type RebateCache interface {
	Get(key string) ([]domain.RebateCategory, bool)
	Set(key string, cats []domain.RebateCategory)
}

// RebateService answers categorized, sorted rebate lookups.
type RebateService struct {
	fetcher IncentiveFetcher
	cache   RebateCache
	group   singleflight.Group
}

// NewRebateService constructs a RebateService. cache may be nil.
func NewRebateService(f IncentiveFetcher, cache RebateCache) *RebateService {
	return &RebateService{fetcher: f, cache: cache}
}

// Lookup validates q, then returns its categories from cache or from one
// provider call shared by every concurrent caller with the same query.
// Invalid queries wrap domain.ErrValidation; provider failures are passed
// through and never cached.
func (s *RebateService) Lookup(ctx context.Context, q domain.RebateQuery) ([]domain.RebateCategory, error) {
	if err := validate.Struct(q); err != nil {
		return nil, fmt.Errorf("service.RebateService.Lookup: %w: %s", domain.ErrValidation, describe(err))
	}

	key := rebate.Encode(q)
	if s.cache != nil {
		if cats, ok := s.cache.Get(key); ok {
			metrics.RecordRebateCache("hit")
			return cats, nil
		}
	}
	metrics.RecordRebateCache("miss")

	// The shared call outlives any single caller; each caller still stops
	// waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		incentives, err := s.fetcher.Fetch(shared, q)
		if err != nil {
			return nil, err
		}
		cats := rebate.CategorizeAndSort(incentives)
		if s.cache != nil {
			s.cache.Set(key, cats)
		}
		return cats, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("service.RebateService.Lookup: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("service.RebateService.Lookup: %w", res.Err)
		}
		return res.Val.([]domain.RebateCategory), nil
	}
}

// describe flattens validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
