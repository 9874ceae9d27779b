package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"guesthouse-backend/allocation"
	"guesthouse-backend/cache"
	"guesthouse-backend/models"

	"gorm.io/gorm"
)

const activeChargesCacheKey = "catalog:active_charges"

// CatalogService serves the special-charge catalog: master charge definitions
// reservations copy rates from.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListActiveCharges returns the active catalog entries, read-through cached.
func (s *CatalogService) ListActiveCharges(ctx context.Context) ([]models.ChargeCatalogItem, error) {
	var items []models.ChargeCatalogItem
	if cache.GetJSON(ctx, activeChargesCacheKey, &items) {
		return items, nil
	}

	if err := s.DB.Where("active = ?", true).Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load charge catalog: %w", err)
	}
	cache.SetJSON(ctx, activeChargesCacheKey, items, 5*time.Minute)
	return items, nil
}

// Snapshot maps catalog rows into the engine's view.
func (s *CatalogService) Snapshot(ctx context.Context) ([]allocation.CatalogItem, error) {
	items, err := s.ListActiveCharges(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]allocation.CatalogItem, 0, len(items))
	for _, it := range items {
		out = append(out, allocation.CatalogItem{
			ID:          strconv.FormatUint(uint64(it.ID), 10),
			Name:        it.Name,
			DefaultRate: it.DefaultRate,
			RateType:    it.RateType,
		})
	}
	return out, nil
}

func (s *CatalogService) Create(ctx context.Context, item *models.ChargeCatalogItem) error {
	if err := s.DB.Create(item).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, activeChargesCacheKey)
	return nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if err := s.DB.Model(&models.ChargeCatalogItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, activeChargesCacheKey)
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	result := s.DB.Where("id = ?", id).Delete(&models.ChargeCatalogItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.Invalidate(ctx, activeChargesCacheKey)
	return nil
}
