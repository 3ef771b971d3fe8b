package entity

// Store represents store table (store views)
type Store struct {
	StoreID   uint16 `gorm:"column:store_id;primaryKey;autoIncrement" json:"store_id"`
	Code      string `gorm:"column:code;type:varchar(32);uniqueIndex" json:"code"`
	WebsiteID uint16 `gorm:"column:website_id;type:smallint unsigned;not null;default:0" json:"website_id"`
	GroupID   uint16 `gorm:"column:group_id;type:smallint unsigned;not null;default:0" json:"group_id"`
	Name      string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	SortOrder uint16 `gorm:"column:sort_order;type:smallint unsigned;not null;default:0" json:"sort_order"`
	IsActive  uint8  `gorm:"column:is_active;type:smallint unsigned;not null;default:0" json:"is_active"`
}

func (Store) TableName() string {
	return "store"
}
