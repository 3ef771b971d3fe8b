package catalog

import (
	"fmt"

	"gorm.io/gorm"

	entity "productmedia.GO/model/entity"
)

// ProductEntityTypeID is the eav_entity_type id of catalog_product.
const ProductEntityTypeID = 4

// CatalogRepository loads the lookup tables an import run needs up front.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// LoadStores returns all store views keyed by store code.
func (r *CatalogRepository) LoadStores() (map[string]entity.Store, error) {
	var stores []entity.Store
	if err := r.db.Order("store_id").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}
	m := make(map[string]entity.Store, len(stores))
	for _, s := range stores {
		m[s.Code] = s
	}
	return m, nil
}

// LoadEavAttributes returns product attributes keyed by attribute code.
func (r *CatalogRepository) LoadEavAttributes() (map[string]entity.EavAttribute, error) {
	var attrs []entity.EavAttribute
	if err := r.db.Where("entity_type_id = ?", ProductEntityTypeID).Find(&attrs).Error; err != nil {
		return nil, fmt.Errorf("load attributes: %w", err)
	}
	m := make(map[string]entity.EavAttribute, len(attrs))
	for _, a := range attrs {
		m[a.AttributeCode] = a
	}
	return m, nil
}

// LoadSkuEntityIDs batch-queries entity ids. A nil skus slice loads every product.
func (r *CatalogRepository) LoadSkuEntityIDs(skus []string, batchSize int) (map[string]uint, error) {
	type skuRow struct {
		EntityID uint   `gorm:"column:entity_id"`
		SKU      string `gorm:"column:sku"`
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	var existing []skuRow
	if skus == nil {
		if err := r.db.Table("catalog_product_entity").Select("entity_id, sku").Find(&existing).Error; err != nil {
			return nil, fmt.Errorf("load skus: %w", err)
		}
	}
	for i := 0; i < len(skus); i += batchSize {
		end := i + batchSize
		if end > len(skus) {
			end = len(skus)
		}
		var chunk []skuRow
		if err := r.db.Table("catalog_product_entity").Select("entity_id, sku").Where("sku IN ?", skus[i:end]).Find(&chunk).Error; err != nil {
			return nil, fmt.Errorf("load skus: %w", err)
		}
		existing = append(existing, chunk...)
	}

	m := make(map[string]uint, len(existing))
	for _, e := range existing {
		m[e.SKU] = e.EntityID
	}
	return m, nil
}
