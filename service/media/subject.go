package media

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"productmedia.GO/config"
	entity "productmedia.GO/model/entity"
	mediaEntity "productmedia.GO/model/entity/media"
)

var (
	ErrUnmappedSKU      = errors.New("found not mapped SKU")
	ErrInvalidStoreCode = errors.New("found invalid store code")
	ErrMissingAttribute = errors.New("missing EAV attribute")
	ErrNoProcessor      = errors.New("no media processor configured")
)

// MediaProcessor persists the media gallery table group.
// *media.MediaRepository implements it.
type MediaProcessor interface {
	PersistProductMediaGallery(fields map[string]interface{}, name string) (uint, error)
	PersistProductMediaGalleryValue(fields map[string]interface{}, name string) error
	PersistProductMediaGalleryValueToEntity(fields map[string]interface{}, name string) error
	PersistProductMediaGalleryValueVideo(fields map[string]interface{}, name string) error

	LoadProductMediaGallery(attributeID uint16, value string) (*mediaEntity.ProductMediaGallery, error)
	LoadProductMediaGalleryValue(valueID uint, storeID uint16, entityID uint) (*mediaEntity.ProductMediaGalleryValue, error)
	LoadProductMediaGalleryValueToEntity(valueID, entityID uint) (*mediaEntity.ProductMediaGalleryValueToEntity, error)
	LoadProductMediaGalleryValueVideo(valueID uint, storeID uint16) (*mediaEntity.ProductMediaGalleryValueVideo, error)
}

// EntityLookup resolves the identifiers rows refer to.
type EntityLookup interface {
	MapSkuToEntityID(sku string) (uint, error)
	GetStoreByStoreCode(code string) (entity.Store, error)
	GetAttribute(code string) (entity.EavAttribute, error)
}

// SubjectConfig is the per-run configuration of a MediaSubject.
type SubjectConfig struct {
	ImageTypes             []config.ImageType
	MultipleValueDelimiter string
}

// ArtefactGroup is the artefacts registered for one product, in row order.
type ArtefactGroup struct {
	Key       string
	Artefacts []*Artefact
}

// MediaSubject carries the state shared by the rows of one import file.
// It is not safe for concurrent use; every worker owns its own subject.
type MediaSubject struct {
	cfg       SubjectConfig
	global    *GlobalImportContext
	mapper    FilenameMapper
	processor MediaProcessor
	log       *zap.Logger

	lastSku         string
	entityKey       string
	artefacts       map[string]map[string][]*Artefact
	artefactOrder   map[string][]string
	positionCounter int
	parentID        uint
	parentValueID   uint
}

// NewMediaSubject builds a subject from the run's global data. mapper and
// processor may be nil: names then map to themselves and persisting fails
// with ErrNoProcessor.
func NewMediaSubject(cfg SubjectConfig, global *GlobalImportContext, mapper FilenameMapper, processor MediaProcessor, log *zap.Logger) *MediaSubject {
	if cfg.MultipleValueDelimiter == "" {
		cfg.MultipleValueDelimiter = ","
	}
	if global == nil {
		global = &GlobalImportContext{}
	}
	if mapper == nil {
		mapper = NewImageMapping()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaSubject{
		cfg:             cfg,
		global:          global,
		mapper:          mapper,
		processor:       processor,
		log:             log,
		artefacts:       make(map[string]map[string][]*Artefact),
		artefactOrder:   make(map[string][]string),
		positionCounter: 1,
	}
}

func (s *MediaSubject) Logger() *zap.Logger {
	return s.log
}

func (s *MediaSubject) GetImageTypes() []config.ImageType {
	return s.cfg.ImageTypes
}

func (s *MediaSubject) GetMultipleValueDelimiter() string {
	return s.cfg.MultipleValueDelimiter
}

func (s *MediaSubject) GetImageMapping(filename string) string {
	return s.mapper.GetImageMapping(filename)
}

func (s *MediaSubject) GetInversedImageMapping(newFilename string) string {
	return s.mapper.GetInversedImageMapping(newFilename)
}

// IsLastSku reports whether sku is the SKU of the previously processed row,
// whether or not that row succeeded.
func (s *MediaSubject) IsLastSku(sku string) bool {
	return s.lastSku == sku
}

func (s *MediaSubject) SetLastSku(sku string) {
	s.lastSku = sku
}

func (s *MediaSubject) LastSku() string {
	return s.lastSku
}

// unknownSkuKeyPrefix keeps SKU-keyed groups apart from entity ids.
const unknownSkuKeyPrefix = "sku:"

// BeginRow binds the artefacts of the following AddArtefacts calls to sku's
// product: its entity id when the product exists, the prefixed SKU otherwise.
func (s *MediaSubject) BeginRow(sku string) {
	if id, ok := s.global.SkuEntityIDMapping[sku]; ok {
		s.entityKey = strconv.FormatUint(uint64(id), 10)
		return
	}
	s.entityKey = unknownSkuKeyPrefix + sku
}

func (s *MediaSubject) NewArtefact(columns map[string]interface{}, originalColumnNames map[string]string) (*Artefact, error) {
	return NewArtefact(columns, originalColumnNames)
}

func (s *MediaSubject) AddArtefacts(artefactType string, artefacts []*Artefact, override bool) {
	if len(artefacts) == 0 {
		return
	}
	byKey, ok := s.artefacts[artefactType]
	if !ok {
		byKey = make(map[string][]*Artefact)
		s.artefacts[artefactType] = byKey
	}
	existing, seen := byKey[s.entityKey]
	if !seen {
		s.artefactOrder[artefactType] = append(s.artefactOrder[artefactType], s.entityKey)
	}
	if override {
		byKey[s.entityKey] = artefacts
		return
	}
	byKey[s.entityKey] = append(existing, artefacts...)
}

// Artefacts returns the registered artefacts of a type, grouped per product
// in the order the products were first seen.
func (s *MediaSubject) Artefacts(artefactType string) []ArtefactGroup {
	keys := s.artefactOrder[artefactType]
	groups := make([]ArtefactGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, ArtefactGroup{Key: k, Artefacts: s.artefacts[artefactType][k]})
	}
	return groups
}

// ResetArtefacts drops all registered artefacts, e.g. after they were exported.
func (s *MediaSubject) ResetArtefacts() {
	s.artefacts = make(map[string]map[string][]*Artefact)
	s.artefactOrder = make(map[string][]string)
}

func (s *MediaSubject) MapSkuToEntityID(sku string) (uint, error) {
	if id, ok := s.global.SkuEntityIDMapping[sku]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w %s", ErrUnmappedSKU, sku)
}

func (s *MediaSubject) GetStoreByStoreCode(code string) (entity.Store, error) {
	if store, ok := s.global.Stores[code]; ok {
		return store, nil
	}
	return entity.Store{}, fmt.Errorf("%w %s", ErrInvalidStoreCode, code)
}

func (s *MediaSubject) GetAttribute(code string) (entity.EavAttribute, error) {
	if attr, ok := s.global.EavAttributes[code]; ok {
		return attr, nil
	}
	return entity.EavAttribute{}, fmt.Errorf("%w %s", ErrMissingAttribute, code)
}

// ResetPositionCounter restarts gallery positions at 1.
func (s *MediaSubject) ResetPositionCounter() {
	s.positionCounter = 1
}

// RaisePositionCounter returns the current position and advances it.
func (s *MediaSubject) RaisePositionCounter() int {
	p := s.positionCounter
	s.positionCounter++
	return p
}

func (s *MediaSubject) SetParentID(id uint) {
	s.parentID = id
}

func (s *MediaSubject) ParentID() uint {
	return s.parentID
}

func (s *MediaSubject) SetParentValueID(id uint) {
	s.parentValueID = id
}

func (s *MediaSubject) ParentValueID() uint {
	return s.parentValueID
}

func (s *MediaSubject) PersistProductMediaGallery(fields map[string]interface{}, name string) (uint, error) {
	if s.processor == nil {
		return 0, ErrNoProcessor
	}
	return s.processor.PersistProductMediaGallery(fields, name)
}

func (s *MediaSubject) PersistProductMediaGalleryValue(fields map[string]interface{}, name string) error {
	if s.processor == nil {
		return ErrNoProcessor
	}
	return s.processor.PersistProductMediaGalleryValue(fields, name)
}

func (s *MediaSubject) PersistProductMediaGalleryValueToEntity(fields map[string]interface{}, name string) error {
	if s.processor == nil {
		return ErrNoProcessor
	}
	return s.processor.PersistProductMediaGalleryValueToEntity(fields, name)
}

func (s *MediaSubject) PersistProductMediaGalleryValueVideo(fields map[string]interface{}, name string) error {
	if s.processor == nil {
		return ErrNoProcessor
	}
	return s.processor.PersistProductMediaGalleryValueVideo(fields, name)
}

// Processor exposes the loaders of the configured media processor.
func (s *MediaSubject) Processor() (MediaProcessor, error) {
	if s.processor == nil {
		return nil, ErrNoProcessor
	}
	return s.processor, nil
}
