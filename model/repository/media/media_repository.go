package media

import (
	"errors"

	"gorm.io/gorm"

	mediaEntity "productmedia.GO/model/entity/media"
)

// Field keys accepted by the persist methods.
const (
	KeyValueID     = "value_id"
	KeyRecordID    = "record_id"
	KeyAttributeID = "attribute_id"
	KeyValue       = "value"
	KeyMediaType   = "media_type"
	KeyDisabled    = "disabled"
	KeyStoreID     = "store_id"
	KeyEntityID    = "entity_id"
	KeyLabel       = "label"
	KeyPosition    = "position"
	KeyProvider    = "provider"
	KeyURL         = "url"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyMetadata    = "metadata"
)

// MediaRepository exposes the media gallery table group to the import.
type MediaRepository struct {
	db            *gorm.DB
	gallery       *Action[mediaEntity.ProductMediaGallery]
	value         *Action[mediaEntity.ProductMediaGalleryValue]
	valueToEntity *Action[mediaEntity.ProductMediaGalleryValueToEntity]
	valueVideo    *Action[mediaEntity.ProductMediaGalleryValueVideo]
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	r := &MediaRepository{
		db: db,
		gallery: NewAction(db, func(r *mediaEntity.ProductMediaGallery) bool {
			return r.ValueID != 0
		}, KeyValueID),
		value: NewAction(db, func(r *mediaEntity.ProductMediaGalleryValue) bool {
			return r.RecordID != 0
		}, KeyValueID, KeyStoreID, KeyEntityID),
		// link and video rows are keyed by foreign keys only, so a set key says
		// nothing about existence; callers pick the statement explicitly
		valueToEntity: NewAction[mediaEntity.ProductMediaGalleryValueToEntity](db, nil, KeyValueID, KeyEntityID),
		valueVideo:    NewAction[mediaEntity.ProductMediaGalleryValueVideo](db, nil, KeyValueID, KeyStoreID),
	}
	// Save would insert for the admin store (store_id 0 is a zero key)
	r.valueVideo.Register(StmtUpdate, updateValueVideo)
	return r
}

func updateValueVideo(db *gorm.DB, row *mediaEntity.ProductMediaGalleryValueVideo) error {
	return db.Model(&mediaEntity.ProductMediaGalleryValueVideo{}).
		Where("value_id = ? AND store_id = ?", row.ValueID, row.StoreID).
		Updates(map[string]interface{}{
			KeyProvider:    row.Provider,
			KeyURL:         row.URL,
			KeyTitle:       row.Title,
			KeyDescription: row.Description,
			KeyMetadata:    row.Metadata,
		}).Error
}

func (r *MediaRepository) ProductMediaGalleryAction() *Action[mediaEntity.ProductMediaGallery] {
	return r.gallery
}

func (r *MediaRepository) ProductMediaGalleryValueAction() *Action[mediaEntity.ProductMediaGalleryValue] {
	return r.value
}

func (r *MediaRepository) ProductMediaGalleryValueToEntityAction() *Action[mediaEntity.ProductMediaGalleryValueToEntity] {
	return r.valueToEntity
}

func (r *MediaRepository) ProductMediaGalleryValueVideoAction() *Action[mediaEntity.ProductMediaGalleryValueVideo] {
	return r.valueVideo
}

// PersistProductMediaGallery writes a gallery entry and returns its value_id.
func (r *MediaRepository) PersistProductMediaGallery(fields map[string]interface{}, name string) (uint, error) {
	row, err := r.gallery.Persist(fields, name)
	if err != nil {
		return 0, err
	}
	return row.ValueID, nil
}

func (r *MediaRepository) PersistProductMediaGalleryValue(fields map[string]interface{}, name string) error {
	_, err := r.value.Persist(fields, name)
	return err
}

func (r *MediaRepository) PersistProductMediaGalleryValueToEntity(fields map[string]interface{}, name string) error {
	_, err := r.valueToEntity.Persist(fields, name)
	return err
}

func (r *MediaRepository) PersistProductMediaGalleryValueVideo(fields map[string]interface{}, name string) error {
	_, err := r.valueVideo.Persist(fields, name)
	return err
}

// LoadProductMediaGallery returns the gallery entry for an attribute/value pair, or nil.
func (r *MediaRepository) LoadProductMediaGallery(attributeID uint16, value string) (*mediaEntity.ProductMediaGallery, error) {
	var row mediaEntity.ProductMediaGallery
	err := r.db.Where("attribute_id = ? AND value = ?", attributeID, value).First(&row).Error
	return found(&row, err)
}

// LoadProductMediaGalleryValue returns the store scoped value row, or nil.
func (r *MediaRepository) LoadProductMediaGalleryValue(valueID uint, storeID uint16, entityID uint) (*mediaEntity.ProductMediaGalleryValue, error) {
	var row mediaEntity.ProductMediaGalleryValue
	err := r.db.Where("value_id = ? AND store_id = ? AND entity_id = ?", valueID, storeID, entityID).First(&row).Error
	return found(&row, err)
}

// LoadProductMediaGalleryValueToEntity returns the gallery/product link, or nil.
func (r *MediaRepository) LoadProductMediaGalleryValueToEntity(valueID, entityID uint) (*mediaEntity.ProductMediaGalleryValueToEntity, error) {
	var row mediaEntity.ProductMediaGalleryValueToEntity
	err := r.db.Where("value_id = ? AND entity_id = ?", valueID, entityID).First(&row).Error
	return found(&row, err)
}

// LoadProductMediaGalleryValueVideo returns the video metadata row, or nil.
func (r *MediaRepository) LoadProductMediaGalleryValueVideo(valueID uint, storeID uint16) (*mediaEntity.ProductMediaGalleryValueVideo, error) {
	var row mediaEntity.ProductMediaGalleryValueVideo
	err := r.db.Where("value_id = ? AND store_id = ?", valueID, storeID).First(&row).Error
	return found(&row, err)
}

func found[T any](row *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
