package entity

import "time"

// OauthTokenTypeAccess marks integration access tokens.
const OauthTokenTypeAccess = "access"

// OauthToken represents oauth_token table (integration and admin tokens)
type OauthToken struct {
	EntityID   uint      `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	ConsumerID *uint     `gorm:"column:consumer_id" json:"consumer_id,omitempty"`
	AdminID    *uint     `gorm:"column:admin_id" json:"admin_id,omitempty"`
	Type       string    `gorm:"column:type;type:varchar(16);not null" json:"type"`
	Token      string    `gorm:"column:token;type:varchar(32);not null;uniqueIndex" json:"-"`
	Secret     string    `gorm:"column:secret;type:varchar(128);not null" json:"-"`
	Revoked    uint16    `gorm:"column:revoked;not null;default:0" json:"revoked"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OauthToken) TableName() string {
	return "oauth_token"
}
