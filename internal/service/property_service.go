package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brokerweb/internal/cache"
	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/upstream"
)

// propertyCacheTTL bounds how stale the public catalog may get.
const propertyCacheTTL = 2 * time.Minute

// PropertyBackend is the slice of the backend client the property service
// needs.
type PropertyBackend interface {
	ListProperties(ctx context.Context, filter upstream.PropertyFilter) ([]model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	CreateProperty(ctx context.Context, token string, in upstream.PropertyInput) (*model.Property, error)
}

// PropertyService serves the public catalog and the admin listing tools.
type PropertyService interface {
	List(ctx context.Context, filter upstream.PropertyFilter) ([]model.Property, error)
	Get(ctx context.Context, id string) (*model.Property, error)
	Featured(ctx context.Context) ([]model.Property, error)
	Create(ctx context.Context, sess *model.Session, in upstream.PropertyInput) (*model.Property, error)
}

type propertyService struct {
	backend PropertyBackend
	cache   *cache.Client
}

// NewPropertyService creates a new property service.
func NewPropertyService(backend PropertyBackend, cacheClient *cache.Client) PropertyService {
	return &propertyService{
		backend: backend,
		cache:   cacheClient,
	}
}

// List fetches the catalog. Unfiltered listings are served from cache when
// possible; the cache is fail-safe, so a cold or broken cache just means a
// backend round-trip.
func (s *propertyService) List(ctx context.Context, filter upstream.PropertyFilter) ([]model.Property, error) {
	cacheable := filter == upstream.PropertyFilter{}
	if cacheable {
		if cached, err := s.cache.Get(ctx, "properties:all"); err == nil && cached != nil {
			var props []model.Property
			if json.Unmarshal(cached, &props) == nil {
				return props, nil
			}
		}
	}

	props, err := s.backend.ListProperties(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if payload, err := json.Marshal(props); err == nil {
			_ = s.cache.Set(ctx, "properties:all", payload, propertyCacheTTL)
		}
	}
	return props, nil
}

// Get fetches one listing.
func (s *propertyService) Get(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: property id is required", apperrors.ErrValidation)
	}

	key := "properties:" + id
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		var prop model.Property
		if json.Unmarshal(cached, &prop) == nil {
			return &prop, nil
		}
	}

	prop, err := s.backend.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(prop); err == nil {
		_ = s.cache.Set(ctx, key, payload, propertyCacheTTL)
	}
	return prop, nil
}

// Featured returns the short list shown on the landing page.
func (s *propertyService) Featured(ctx context.Context) ([]model.Property, error) {
	return s.backend.ListProperties(ctx, upstream.PropertyFilter{Status: "available", Limit: 6})
}

// Create publishes a new listing and invalidates the cached catalog.
func (s *propertyService) Create(ctx context.Context, sess *model.Session, in upstream.PropertyInput) (*model.Property, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	if in.Title == "" || in.PropertyType == "" {
		return nil, fmt.Errorf("%w: title and property type are required", apperrors.ErrValidation)
	}

	prop, err := s.backend.CreateProperty(ctx, token, in)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, "properties:all")
	return prop, nil
}
