package calculation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"estatefees/internal/logger"
	"estatefees/internal/models"
	"estatefees/internal/services/feecalc"

	"github.com/sirupsen/logrus"
)

const (
	DefaultCacheTTL = 10 * time.Minute
	cachePrefix     = "feecalc:v1"

	// CachePattern matches every cached quote.
	CachePattern = cachePrefix + ":*"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidBaseValue = errors.New("invalid base value")
)

// Catalog is the read-only category source.
type Catalog interface {
	feecalc.CatalogSource
	Summaries() []models.CategorySummary
}

// Cache stores computed quotes. Implementations must treat a missing key
// as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Quote bundles a calculation result with its comparison to the category average.
type Quote struct {
	Result     *models.CalculationResult `json:"result"`
	Comparison *models.ComparisonResult  `json:"comparison"`
}

// Service prices catalog categories for request handlers. Each call uses a
// fresh Calculator, so requests never share orchestrator state.
type Service struct {
	catalog Catalog
	cache   Cache
	ttl     time.Duration
}

// NewService creates a calculation service. cache may be nil.
func NewService(catalog Catalog, cache Cache, ttl time.Duration) *Service {
	if catalog == nil {
		panic("catalog is required")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{catalog: catalog, cache: cache, ttl: ttl}
}

func (s *Service) Categories() []models.CategorySummary {
	return s.catalog.Summaries()
}

func (s *Service) Category(id string) (models.CategoryFeeStructure, error) {
	structure, ok := s.catalog.Get(id)
	if !ok {
		return models.CategoryFeeStructure{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	return structure, nil
}

// Calculate prices categoryID at baseValue. An empty baseValue uses the
// category default; any other text must survive ParseAmount.
func (s *Service) Calculate(ctx context.Context, categoryID, baseValue string) (*Quote, error) {
	calc, err := s.calculator(categoryID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseValue) != "" && !calc.SetBaseValueText(baseValue) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseValue, baseValue)
	}
	return s.quote(ctx, calc), nil
}

// CalculateValue prices categoryID at an already numeric base value.
// Negative and non-finite values are rejected.
func (s *Service) CalculateValue(ctx context.Context, categoryID string, baseValue float64) (*Quote, error) {
	calc, err := s.calculator(categoryID)
	if err != nil {
		return nil, err
	}
	if !calc.SetBaseValue(baseValue) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseValue, baseValue)
	}
	return s.quote(ctx, calc), nil
}

func (s *Service) calculator(categoryID string) (*feecalc.Calculator, error) {
	calc := feecalc.NewCalculator(s.catalog)
	if !calc.SelectCategory(categoryID) {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}
	return calc, nil
}

func (s *Service) quote(ctx context.Context, calc *feecalc.Calculator) *Quote {
	key := cacheKey(calc.CategoryID(), calc.BaseValue())
	log := logger.L.WithFields(logrus.Fields{"category_id": calc.CategoryID(), "base_value": calc.BaseValue()})

	if s.cache != nil {
		var cached Quote
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.WithError(err).Warn("calculation cache read failed")
		} else if found {
			return &cached
		}
	}

	quote := &Quote{
		Result:     calc.Result(),
		Comparison: calc.Comparison(),
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, key, quote, s.ttl); err != nil {
			log.WithError(err).Warn("calculation cache write failed")
		}
	}
	return quote
}

func cacheKey(categoryID string, baseValue float64) string {
	return fmt.Sprintf("%s:%s:%s", cachePrefix, categoryID, strconv.FormatFloat(baseValue, 'f', -1, 64))
}
