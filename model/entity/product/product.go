package product

import "time"

// Product represents catalog_product_entity table
type Product struct {
	EntityID       uint      `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	AttributeSetID uint16    `gorm:"column:attribute_set_id;type:smallint unsigned;not null;default:0" json:"attribute_set_id"`
	TypeID         string    `gorm:"column:type_id;type:varchar(32);not null;default:simple" json:"type_id"`
	SKU            string    `gorm:"column:sku;type:varchar(64);index" json:"sku"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product_entity"
}
