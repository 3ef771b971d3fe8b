package entity

import "time"

// Role types of authorization_role rows.
const (
	RoleTypeGroup = "G"
	RoleTypeUser  = "U"
)

// AdminUser represents admin_user table; only the columns the API auth reads.
type AdminUser struct {
	UserID   uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username *string   `gorm:"column:username;type:varchar(40);uniqueIndex" json:"username,omitempty"`
	Email    *string   `gorm:"column:email;type:varchar(128)" json:"email,omitempty"`
	IsActive int16     `gorm:"column:is_active;not null;default:1" json:"is_active"`
	Created  time.Time `gorm:"column:created;autoCreateTime" json:"created"`
}

func (AdminUser) TableName() string {
	return "admin_user"
}

// AuthorizationRole represents authorization_role table. A user row ('U')
// points at its group row ('G') through ParentID.
type AuthorizationRole struct {
	RoleID   uint   `gorm:"column:role_id;primaryKey;autoIncrement" json:"role_id"`
	ParentID uint   `gorm:"column:parent_id;not null;default:0" json:"parent_id"`
	RoleType string `gorm:"column:role_type;type:varchar(1);not null;default:'0'" json:"role_type"`
	UserID   uint   `gorm:"column:user_id;not null;default:0" json:"user_id"`
	UserType string `gorm:"column:user_type;type:varchar(16)" json:"user_type,omitempty"`
	RoleName string `gorm:"column:role_name;type:varchar(50)" json:"role_name"`
}

func (AuthorizationRole) TableName() string {
	return "authorization_role"
}

// AuthorizationRule represents authorization_rule table
type AuthorizationRule struct {
	RuleID     uint    `gorm:"column:rule_id;primaryKey;autoIncrement" json:"rule_id"`
	RoleID     uint    `gorm:"column:role_id;not null;default:0;index" json:"role_id"`
	ResourceID *string `gorm:"column:resource_id;type:varchar(255)" json:"resource_id,omitempty"`
	Permission *string `gorm:"column:permission;type:varchar(10)" json:"permission,omitempty"`
}

func (AuthorizationRule) TableName() string {
	return "authorization_rule"
}
