package media

// Columns of the product CSV read by the media observer.
const (
	ColumnSku                   = "sku"
	ColumnStoreViewCode         = "store_view_code"
	ColumnAttributeSetCode      = "attribute_set_code"
	ColumnAdditionalImages      = "additional_images"
	ColumnAdditionalImageLabels = "additional_image_labels"
	ColumnHideFromProductPage   = "hide_from_product_page"
)

// Columns of the media artefact CSV.
const (
	ColumnImageParentSku   = "image_parent_sku"
	ColumnImagePath        = "image_path"
	ColumnImagePathNew     = "image_path_new"
	ColumnImageLabel       = "image_label"
	ColumnImagePosition    = "image_position"
	ColumnVideoURL         = "video_url"
	ColumnVideoTitle       = "video_title"
	ColumnVideoDescription = "video_description"
	ColumnVideoProvider    = "video_provider"
	ColumnVideoMetadata    = "video_metadata"
	ColumnOriginalColumns  = "original_columns"
)

const (
	// ArtefactTypeMedia tags the artefacts produced by ProductMediaObserver.
	ArtefactTypeMedia = "media"

	// DefaultImageLabel is used when neither a label column nor an additional label is given.
	DefaultImageLabel = "Image"

	// AdminStoreCode is the store view of rows without a store_view_code.
	AdminStoreCode = "admin"

	// AttributeCodeMediaGallery is the EAV attribute gallery entries belong to.
	AttributeCodeMediaGallery = "media_gallery"
)
