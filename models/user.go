package models

import (
	"context"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
)

// User is the narrow session model the core needs: the auth collaborator owns
// registration, passwords and sessions. The core trusts the token claims.
type User struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Role         UserRole  `gorm:"size:20;not null;default:Operator" json:"role"`
	RestaurantId string    `gorm:"index;size:64" json:"restaurant_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetUser(ctx context.Context, id int) (*User, error) {
	var user User
	key := "User:" + strconv.Itoa(id)
	exists, err := config.GetRedisObject(key, &user)
	if err == nil && exists {
		return &user, nil
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Take(&user, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := config.SetRedisObject(key, &user, 5*time.Minute); err != nil {
		config.GetLogger().Warn("failed to cache user record: " + err.Error())
	}
	return &user, nil
}
