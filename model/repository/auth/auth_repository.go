package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	entity "productmedia.GO/model/entity"
)

// ErrTokenNotFound is returned for unknown, revoked or non-access tokens.
var ErrTokenNotFound = errors.New("access token not found")

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindActiveToken returns a non-revoked access token by its token string.
func (r *AuthRepository) FindActiveToken(token string) (*entity.OauthToken, error) {
	var t entity.OauthToken
	err := r.db.Where("token = ? AND type = ? AND revoked = 0", token, entity.OauthTokenTypeAccess).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &t, nil
}

// IsActiveAdmin reports whether the admin user behind a token is still enabled.
func (r *AuthRepository) IsActiveAdmin(adminID uint) (bool, error) {
	var user entity.AdminUser
	err := r.db.Select("user_id", "is_active").Where("user_id = ?", adminID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find admin user: %w", err)
	}
	return user.IsActive == 1, nil
}

// FindAdminResources resolves admin user -> user role (role_type 'U') ->
// group role (role_type 'G') -> allowed ACL resources.
func (r *AuthRepository) FindAdminResources(adminID uint) (*entity.AuthorizationRole, []string, error) {
	var userRole entity.AuthorizationRole
	if err := r.db.Where("user_id = ? AND role_type = ?", adminID, entity.RoleTypeUser).First(&userRole).Error; err != nil {
		return nil, nil, fmt.Errorf("find user role: %w", err)
	}
	var groupRole entity.AuthorizationRole
	if err := r.db.Where("role_id = ? AND role_type = ?", userRole.ParentID, entity.RoleTypeGroup).First(&groupRole).Error; err != nil {
		return nil, nil, fmt.Errorf("find group role: %w", err)
	}

	var rules []entity.AuthorizationRule
	if err := r.db.Where("role_id = ? AND permission = 'allow'", groupRole.RoleID).Find(&rules).Error; err != nil {
		return nil, nil, fmt.Errorf("find rules: %w", err)
	}
	resources := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.ResourceID != nil {
			resources = append(resources, *rule.ResourceID)
		}
	}
	return &groupRole, resources, nil
}
