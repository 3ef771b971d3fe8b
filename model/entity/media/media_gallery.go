package media

// Media types stored in catalog_product_entity_media_gallery.media_type
const (
	MediaTypeImage         = "image"
	MediaTypeExternalVideo = "external-video"
)

// ProductMediaGallery represents catalog_product_entity_media_gallery table
type ProductMediaGallery struct {
	ValueID     uint   `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id" mapstructure:"value_id"`
	AttributeID uint16 `gorm:"column:attribute_id;type:smallint unsigned;not null;default:0;index:idx_media_gallery_attr_value" json:"attribute_id" mapstructure:"attribute_id"`
	Value       string `gorm:"column:value;type:varchar(255);index:idx_media_gallery_attr_value" json:"value" mapstructure:"value"`
	MediaType   string `gorm:"column:media_type;type:varchar(32);not null;default:image" json:"media_type" mapstructure:"media_type"`
	Disabled    uint8  `gorm:"column:disabled;type:smallint unsigned;not null;default:0" json:"disabled" mapstructure:"disabled"`
}

func (ProductMediaGallery) TableName() string {
	return "catalog_product_entity_media_gallery"
}

// ProductMediaGalleryValue represents catalog_product_entity_media_gallery_value table
type ProductMediaGalleryValue struct {
	RecordID uint    `gorm:"column:record_id;primaryKey;autoIncrement" json:"record_id" mapstructure:"record_id"`
	ValueID  uint    `gorm:"column:value_id;not null;default:0;uniqueIndex:idx_media_gallery_value_unq" json:"value_id" mapstructure:"value_id"`
	StoreID  uint16  `gorm:"column:store_id;type:smallint unsigned;not null;default:0;uniqueIndex:idx_media_gallery_value_unq" json:"store_id" mapstructure:"store_id"`
	EntityID uint    `gorm:"column:entity_id;not null;default:0;uniqueIndex:idx_media_gallery_value_unq" json:"entity_id" mapstructure:"entity_id"`
	Label    *string `gorm:"column:label;type:varchar(255)" json:"label,omitempty" mapstructure:"label"`
	Position *uint   `gorm:"column:position" json:"position,omitempty" mapstructure:"position"`
	Disabled uint8   `gorm:"column:disabled;type:smallint unsigned;not null;default:0" json:"disabled" mapstructure:"disabled"`
}

func (ProductMediaGalleryValue) TableName() string {
	return "catalog_product_entity_media_gallery_value"
}

// ProductMediaGalleryValueToEntity represents catalog_product_entity_media_gallery_value_to_entity table
type ProductMediaGalleryValueToEntity struct {
	ValueID  uint `gorm:"column:value_id;primaryKey;autoIncrement:false" json:"value_id" mapstructure:"value_id"`
	EntityID uint `gorm:"column:entity_id;primaryKey;autoIncrement:false" json:"entity_id" mapstructure:"entity_id"`
}

func (ProductMediaGalleryValueToEntity) TableName() string {
	return "catalog_product_entity_media_gallery_value_to_entity"
}

// ProductMediaGalleryValueVideo represents catalog_product_entity_media_gallery_value_video table
type ProductMediaGalleryValueVideo struct {
	ValueID     uint    `gorm:"column:value_id;primaryKey;autoIncrement:false" json:"value_id" mapstructure:"value_id"`
	StoreID     uint16  `gorm:"column:store_id;type:smallint unsigned;primaryKey;autoIncrement:false" json:"store_id" mapstructure:"store_id"`
	Provider    *string `gorm:"column:provider;type:varchar(32)" json:"provider,omitempty" mapstructure:"provider"`
	URL         *string `gorm:"column:url;type:text" json:"url,omitempty" mapstructure:"url"`
	Title       *string `gorm:"column:title;type:varchar(255)" json:"title,omitempty" mapstructure:"title"`
	Description *string `gorm:"column:description;type:text" json:"description,omitempty" mapstructure:"description"`
	Metadata    *string `gorm:"column:metadata;type:text" json:"metadata,omitempty" mapstructure:"metadata"`
}

func (ProductMediaGalleryValueVideo) TableName() string {
	return "catalog_product_entity_media_gallery_value_video"
}
