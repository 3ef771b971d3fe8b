package media

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	mediaEntity "productmedia.GO/model/entity/media"
	mediaRepo "productmedia.GO/model/repository/media"
)

// GalleryStats counts what the gallery stage wrote.
type GalleryStats struct {
	GalleriesCreated int
	GalleriesUpdated int
	LinksCreated     int
	ValuesCreated    int
	ValuesUpdated    int
	Videos           int
}

// MediaGalleryObserver writes one media artefact row into the gallery tables:
// the gallery entry, its link to the product, the store scoped value and,
// for videos, the video metadata.
type MediaGalleryObserver struct {
	subject *MediaSubject
	stats   GalleryStats
	log     *zap.Logger
}

func NewMediaGalleryObserver(subject *MediaSubject) *MediaGalleryObserver {
	return &MediaGalleryObserver{subject: subject, log: subject.Logger()}
}

func (o *MediaGalleryObserver) Stats() GalleryStats {
	return o.stats
}

func (o *MediaGalleryObserver) Handle(row RowContext) error {
	parentSku := row.GetValue(ColumnImageParentSku)
	image := row.GetValue(ColumnImagePathNew)
	if image == "" {
		image = row.GetValue(ColumnImagePath)
	}
	if image == "" {
		return nil
	}

	s := o.subject
	if !s.IsLastSku(parentSku) {
		s.ResetPositionCounter()
	}

	processor, err := s.Processor()
	if err != nil {
		return err
	}
	entityID, err := s.MapSkuToEntityID(parentSku)
	if err != nil {
		return err
	}
	storeCode := row.GetValue(ColumnStoreViewCode)
	if storeCode == "" {
		storeCode = AdminStoreCode
	}
	store, err := s.GetStoreByStoreCode(storeCode)
	if err != nil {
		return err
	}
	attr, err := s.GetAttribute(AttributeCodeMediaGallery)
	if err != nil {
		return err
	}

	s.SetParentID(entityID)

	videoURL := row.GetValue(ColumnVideoURL)
	mediaType := mediaEntity.MediaTypeImage
	if videoURL != "" {
		mediaType = mediaEntity.MediaTypeExternalVideo
	}

	// gallery entry, shared by every product and store using the file
	gallery, err := processor.LoadProductMediaGallery(attr.AttributeID, image)
	if err != nil {
		return err
	}
	galleryFields := map[string]interface{}{
		mediaRepo.KeyAttributeID: attr.AttributeID,
		mediaRepo.KeyValue:       image,
		mediaRepo.KeyMediaType:   mediaType,
		mediaRepo.KeyDisabled:    0,
	}
	if gallery != nil {
		galleryFields[mediaRepo.KeyValueID] = gallery.ValueID
	}
	valueID, err := s.PersistProductMediaGallery(galleryFields, "")
	if err != nil {
		return err
	}
	if gallery != nil {
		o.stats.GalleriesUpdated++
	} else {
		o.stats.GalleriesCreated++
	}
	s.SetParentValueID(valueID)

	link, err := processor.LoadProductMediaGalleryValueToEntity(valueID, entityID)
	if err != nil {
		return err
	}
	if link == nil {
		if err := s.PersistProductMediaGalleryValueToEntity(map[string]interface{}{
			mediaRepo.KeyValueID:  valueID,
			mediaRepo.KeyEntityID: entityID,
		}, mediaRepo.StmtCreate); err != nil {
			return err
		}
		o.stats.LinksCreated++
	}

	position, err := o.position(row)
	if err != nil {
		return err
	}
	hide, err := strconv.Atoi(defaultString(row.GetValue(ColumnHideFromProductPage), "0"))
	if err != nil {
		return fmt.Errorf("%s: invalid value %q", ColumnHideFromProductPage, row.GetValue(ColumnHideFromProductPage))
	}

	value, err := processor.LoadProductMediaGalleryValue(valueID, store.StoreID, entityID)
	if err != nil {
		return err
	}
	valueFields := map[string]interface{}{
		mediaRepo.KeyValueID:  valueID,
		mediaRepo.KeyStoreID:  store.StoreID,
		mediaRepo.KeyEntityID: entityID,
		mediaRepo.KeyLabel:    defaultString(row.GetValue(ColumnImageLabel), DefaultImageLabel),
		mediaRepo.KeyPosition: position,
		mediaRepo.KeyDisabled: hide,
	}
	if value != nil {
		valueFields[mediaRepo.KeyRecordID] = value.RecordID
	}
	if err := s.PersistProductMediaGalleryValue(valueFields, ""); err != nil {
		return err
	}
	if value != nil {
		o.stats.ValuesUpdated++
	} else {
		o.stats.ValuesCreated++
	}

	if videoURL != "" {
		if err := o.persistVideo(row, processor, valueID, store.StoreID, videoURL); err != nil {
			return err
		}
	}

	o.log.Debug("gallery row persisted",
		zap.String("sku", parentSku), zap.String("image", image),
		zap.Uint("value_id", valueID), zap.String("store", storeCode))
	return nil
}

func (o *MediaGalleryObserver) persistVideo(row RowContext, processor MediaProcessor, valueID uint, storeID uint16, url string) error {
	existing, err := processor.LoadProductMediaGalleryValueVideo(valueID, storeID)
	if err != nil {
		return err
	}
	stmt := mediaRepo.StmtCreate
	if existing != nil {
		stmt = mediaRepo.StmtUpdate
	}
	if err := o.subject.PersistProductMediaGalleryValueVideo(map[string]interface{}{
		mediaRepo.KeyValueID:     valueID,
		mediaRepo.KeyStoreID:     storeID,
		mediaRepo.KeyProvider:    row.GetValue(ColumnVideoProvider),
		mediaRepo.KeyURL:         url,
		mediaRepo.KeyTitle:       row.GetValue(ColumnVideoTitle),
		mediaRepo.KeyDescription: row.GetValue(ColumnVideoDescription),
		mediaRepo.KeyMetadata:    row.GetValue(ColumnVideoMetadata),
	}, stmt); err != nil {
		return err
	}
	o.stats.Videos++
	return nil
}

// position uses the row's image_position when given, the subject's counter otherwise.
func (o *MediaGalleryObserver) position(row RowContext) (int, error) {
	if !row.HasValue(ColumnImagePosition) {
		return o.subject.RaisePositionCounter(), nil
	}
	p, err := strconv.Atoi(row.GetValue(ColumnImagePosition))
	if err != nil || p < 0 {
		return 0, fmt.Errorf("%s: invalid value %q", ColumnImagePosition, row.GetValue(ColumnImagePosition))
	}
	return p, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
