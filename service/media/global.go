package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"productmedia.GO/core/registry"
	entity "productmedia.GO/model/entity"
	catalogRepo "productmedia.GO/model/repository/catalog"
)

// GlobalImportContext is the data loaded once per import run and shared by
// every subject of the run.
type GlobalImportContext struct {
	EavAttributes      map[string]entity.EavAttribute `json:"eavAttributes"`
	Stores             map[string]entity.Store        `json:"stores"`
	SkuEntityIDMapping map[string]uint                `json:"skuEntityIdMapping"`
}

// NewSerial returns a fresh run identifier.
func NewSerial() string {
	return uuid.NewString()
}

// LoadGlobalContext reads stores, product attributes and the SKU -> entity id
// map. A nil skus slice loads the ids of all products.
func LoadGlobalContext(db *gorm.DB, skus []string, batchSize int) (*GlobalImportContext, error) {
	repo := catalogRepo.NewCatalogRepository(db)

	stores, err := repo.LoadStores()
	if err != nil {
		return nil, err
	}
	attrs, err := repo.LoadEavAttributes()
	if err != nil {
		return nil, err
	}
	skuMap, err := repo.LoadSkuEntityIDs(skus, batchSize)
	if err != nil {
		return nil, err
	}
	return &GlobalImportContext{
		EavAttributes:      attrs,
		Stores:             stores,
		SkuEntityIDMapping: skuMap,
	}, nil
}

// PrepareGlobalContext stores the run's global data in the registry under serial.
func PrepareGlobalContext(ctx context.Context, reg registry.Processor, serial string, global *GlobalImportContext) error {
	if err := reg.SetAttribute(ctx, serial, global); err != nil {
		return fmt.Errorf("prepare global context %s: %w", serial, err)
	}
	return nil
}

// LoadStatus reads back the global data a run prepared.
func LoadStatus(ctx context.Context, reg registry.Processor, serial string) (*GlobalImportContext, error) {
	var global GlobalImportContext
	if err := reg.GetAttribute(ctx, serial, &global); err != nil {
		return nil, fmt.Errorf("load status %s: %w", serial, err)
	}
	return &global, nil
}
