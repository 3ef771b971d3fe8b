package media

import (
	"go.uber.org/zap"

	"productmedia.GO/config"
)

// Observer handles one CSV row of an import stage.
type Observer interface {
	Handle(row RowContext) error
}

// MediaObserverSubject is what ProductMediaObserver needs from its subject.
type MediaObserverSubject interface {
	FilenameMapper
	ArtefactSink
	// IsLastSku reports whether sku is the SKU of the previously processed row.
	IsLastSku(sku string) bool
	GetImageTypes() []config.ImageType
	GetMultipleValueDelimiter() string
}

// ProductMediaObserver turns the image columns of a product row into media
// artefacts: one per distinct original image, named image slots first,
// additional images after.
type ProductMediaObserver struct {
	subject  MediaObserverSubject
	resolver *ImageValueResolver
	explode  Transform[[]string]
	log      *zap.Logger
}

func NewProductMediaObserver(subject MediaObserverSubject, log *zap.Logger) *ProductMediaObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductMediaObserver{
		subject:  subject,
		resolver: NewImageValueResolver(),
		explode:  Explode(subject.GetMultipleValueDelimiter()),
		log:      log,
	}
}

// Reset forgets the main row of the current SKU group.
func (o *ProductMediaObserver) Reset() {
	o.resolver.Reset()
}

func (o *ProductMediaObserver) Handle(row RowContext) error {
	sku := row.GetValue(ColumnSku)
	mainRow := !o.subject.IsLastSku(sku)
	if mainRow {
		o.resolver.Reset()
	}

	artefacts, err := o.process(row, sku, mainRow)
	if err != nil {
		o.resolver.Discard()
		return err
	}
	o.resolver.Commit()

	if artefacts.Len() > 0 {
		o.subject.AddArtefacts(ArtefactTypeMedia, artefacts.Values(), false)
	}
	return nil
}

func (o *ProductMediaObserver) process(row RowContext, sku string, mainRow bool) (*ArtefactSet, error) {
	artefacts := NewArtefactSet()

	hidden, err := o.loadImagesToHide(row)
	if err != nil {
		return nil, err
	}
	if err := o.processImages(row, sku, mainRow, artefacts, hidden); err != nil {
		return nil, err
	}
	if err := o.processAdditionalImages(row, sku, mainRow, artefacts, hidden); err != nil {
		return nil, err
	}
	return artefacts, nil
}

// loadImagesToHide maps the hide list to stored filenames, the form image columns carry.
func (o *ProductMediaObserver) loadImagesToHide(row RowContext) (map[string]struct{}, error) {
	names, err := getValue(row, ColumnHideFromProductPage, []string(nil), o.explode)
	if err != nil {
		return nil, err
	}
	hidden := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		hidden[o.subject.GetImageMapping(name)] = struct{}{}
	}
	return hidden, nil
}

func (o *ProductMediaObserver) processImages(row RowContext, sku string, mainRow bool, artefacts *ArtefactSet, hidden map[string]struct{}) error {
	storeViewCode := row.GetValue(ColumnStoreViewCode)
	attributeSetCode := row.GetValue(ColumnAttributeSetCode)

	for _, it := range o.subject.GetImageTypes() {
		image, ok, err := resolveImageValue[string](o.resolver, row, mainRow, it.ImageColumn, identity)
		if err != nil {
			return err
		}
		if !ok || image == "" {
			continue
		}

		imagePath := o.subject.GetInversedImageMapping(image)
		if artefacts.Has(imagePath) {
			o.log.Debug("duplicate image skipped",
				zap.String("sku", sku), zap.String("column", it.ImageColumn), zap.String("image", imagePath))
			continue
		}

		label := DefaultImageLabel
		if row.HasValue(it.LabelColumn) {
			label = row.GetValue(it.LabelColumn)
		}

		artefact, err := o.subject.NewArtefact(
			map[string]interface{}{
				ColumnStoreViewCode:       storeViewCode,
				ColumnAttributeSetCode:    attributeSetCode,
				ColumnImageParentSku:      sku,
				ColumnImagePath:           imagePath,
				ColumnImagePathNew:        image,
				ColumnHideFromProductPage: hideFlag(hidden, image),
				ColumnImageLabel:          label,
			},
			map[string]string{
				ColumnStoreViewCode:       ColumnStoreViewCode,
				ColumnAttributeSetCode:    ColumnAttributeSetCode,
				ColumnImageParentSku:      ColumnSku,
				ColumnImagePath:           it.ImageColumn,
				ColumnImagePathNew:        it.ImageColumn,
				ColumnHideFromProductPage: ColumnHideFromProductPage,
				ColumnImageLabel:          it.LabelColumn,
			},
		)
		if err != nil {
			return err
		}
		artefacts.Add(imagePath, artefact)
	}
	return nil
}

func (o *ProductMediaObserver) processAdditionalImages(row RowContext, sku string, mainRow bool, artefacts *ArtefactSet, hidden map[string]struct{}) error {
	images, ok, err := resolveImageValue[[]string](o.resolver, row, mainRow, ColumnAdditionalImages, o.explode)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	labels, err := getValue(row, ColumnAdditionalImageLabels, []string(nil), o.explode)
	if err != nil {
		return err
	}

	storeViewCode := row.GetValue(ColumnStoreViewCode)
	attributeSetCode := row.GetValue(ColumnAttributeSetCode)

	for k, image := range images {
		if image == "" {
			continue
		}
		imagePath := o.subject.GetInversedImageMapping(image)
		if artefacts.Has(imagePath) {
			o.log.Debug("duplicate image skipped",
				zap.String("sku", sku), zap.String("column", ColumnAdditionalImages), zap.String("image", imagePath))
			continue
		}

		// a blank list entry takes the default too; exported labels are never empty
		label := DefaultImageLabel
		if k < len(labels) && labels[k] != "" {
			label = labels[k]
		}

		artefact, err := o.subject.NewArtefact(
			map[string]interface{}{
				ColumnStoreViewCode:       storeViewCode,
				ColumnAttributeSetCode:    attributeSetCode,
				ColumnImageParentSku:      sku,
				ColumnImagePath:           imagePath,
				ColumnImagePathNew:        image,
				ColumnHideFromProductPage: hideFlag(hidden, image),
				ColumnImageLabel:          label,
			},
			map[string]string{
				ColumnStoreViewCode:       ColumnStoreViewCode,
				ColumnAttributeSetCode:    ColumnAttributeSetCode,
				ColumnImageParentSku:      ColumnSku,
				ColumnImagePath:           ColumnAdditionalImages,
				ColumnImagePathNew:        ColumnAdditionalImages,
				ColumnHideFromProductPage: ColumnHideFromProductPage,
				ColumnImageLabel:          ColumnAdditionalImageLabels,
			},
		)
		if err != nil {
			return err
		}
		artefacts.Add(imagePath, artefact)
	}
	return nil
}

func hideFlag(hidden map[string]struct{}, image string) int {
	if _, ok := hidden[image]; ok {
		return 1
	}
	return 0
}
