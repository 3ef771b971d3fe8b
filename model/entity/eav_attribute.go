package entity

// EavAttribute represents eav_attribute table
type EavAttribute struct {
	AttributeID   uint16 `gorm:"column:attribute_id;primaryKey;autoIncrement" json:"attribute_id"`
	EntityTypeID  uint16 `gorm:"column:entity_type_id;type:smallint unsigned;not null;default:0;index" json:"entity_type_id"`
	AttributeCode string `gorm:"column:attribute_code;type:varchar(255);not null" json:"attribute_code"`
	BackendType   string `gorm:"column:backend_type;type:varchar(8);not null;default:static" json:"backend_type"`
	FrontendInput string `gorm:"column:frontend_input;type:varchar(50)" json:"frontend_input,omitempty"`
}

func (EavAttribute) TableName() string {
	return "eav_attribute"
}
