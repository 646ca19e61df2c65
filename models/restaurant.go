package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/provisioning"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Restaurant is a tenant. Subdomain is globally unique and treated as immutable
// once DNS provisioning has run.
type Restaurant struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name" binding:"required"`
	Subdomain   string    `gorm:"uniqueIndex;size:63;not null" json:"subdomain"`
	Location    string    `gorm:"size:255" json:"location"`
	OwnerId     int       `gorm:"index;not null" json:"owner_id"`
	TemplateId  *int      `gorm:"index" json:"template_id"`
	CategoryTag string    `gorm:"size:50" json:"category_tag"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type NewRestaurant struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	OwnerId     int    `json:"owner_id" binding:"required"`
	TemplateId  *int   `json:"template_id"`
	CategoryTag string `json:"category_tag"`
}

func tenantCacheKey(subdomain string) string {
	return "Restaurant:sub:" + subdomain
}

// ResolveTenant maps a subdomain to its restaurant. Comparison is
// case-normalized and exact-match only. A miss returns ErrorRecordNotFound;
// the public handler falls through to the platform-home response, it never
// treats a miss as a server error.
func ResolveTenant(ctx context.Context, subdomain string) (*Restaurant, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return nil, utils.ErrorRecordNotFound
	}

	var restaurant Restaurant
	exists, err := config.GetRedisObject(tenantCacheKey(subdomain), &restaurant)
	if err == nil && exists {
		return &restaurant, nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Where("subdomain = ?", subdomain).Take(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	if cacheErr := config.SetRedisObject(tenantCacheKey(subdomain), &restaurant, config.TenantCacheTTL()); cacheErr != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"module":    "restaurant",
			"subdomain": subdomain,
		}).Warn("failed to cache tenant: " + cacheErr.Error())
	}
	return &restaurant, nil
}

// GetRestaurant fetches by primary id. Unknown id is NotFound for the whole
// menu operation.
func GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	var restaurant Restaurant
	db := config.GetDB()
	err := db.WithContext(ctx).Where("id = ?", id).Take(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// CreateRestaurant creates the tenant record and then provisions its
// subdomain. Provisioning is best-effort: a DNS failure is logged and the
// restaurant stays, possibly with a non-provisioned subdomain.
func CreateRestaurant(ctx context.Context, input *NewRestaurant, dns provisioning.Client) (*Restaurant, error) {
	logger := config.GetLogger()

	subdomain, err := provisioning.FindAvailableSubdomain(ctx, dns, input.Name)
	if err != nil {
		config.LogError(logger, "restaurant", "CreateRestaurant", "FindAvailableSubdomain", input.Name, err)
		subdomain = provisioning.SanitizeSubdomain(input.Name)
	}
	if !provisioning.IsValidSubdomain(subdomain) {
		return nil, errors.New("invalid subdomain")
	}
	// DNS availability is not DB uniqueness; catch the duplicate before the
	// insert so the caller gets a clean error instead of a driver one.
	if err := utils.ValidateUnique[Restaurant](ctx, "", "subdomain", subdomain, ""); err != nil {
		return nil, err
	}

	restaurant := Restaurant{
		Name:        input.Name,
		Subdomain:   subdomain,
		Location:    input.Location,
		OwnerId:     input.OwnerId,
		TemplateId:  input.TemplateId,
		CategoryTag: input.CategoryTag,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		return nil, err
	}

	if _, err := dns.CreateSubdomain(ctx, subdomain); err != nil {
		config.LogError(logger, "restaurant", "CreateRestaurant", "CreateSubdomain", subdomain, err)
	}

	return &restaurant, nil
}

type UpdateRestaurantInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	TemplateId  *int   `json:"template_id"`
	CategoryTag string `json:"category_tag"`
}

// UpdateRestaurant edits the tenant record. The subdomain is immutable; public
// URLs and provisioned DNS depend on it.
func UpdateRestaurant(ctx context.Context, id string, input *UpdateRestaurantInput) (*Restaurant, error) {
	restaurant, err := GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		restaurant.Name = input.Name
	}
	if input.Location != "" {
		restaurant.Location = input.Location
	}
	if input.TemplateId != nil {
		restaurant.TemplateId = input.TemplateId
	}
	if input.CategoryTag != "" {
		restaurant.CategoryTag = input.CategoryTag
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(restaurant).Error; err != nil {
		return nil, err
	}
	if err := InvalidateTenantCache(restaurant.Subdomain); err != nil {
		config.LogError(config.GetLogger(), "restaurant", "UpdateRestaurant", "InvalidateTenantCache", restaurant.Subdomain, err)
	}
	return restaurant, nil
}

// InvalidateTenantCache drops the cached record after an operator edit so
// public resolution picks up the change on the next request.
func InvalidateTenantCache(subdomain string) error {
	return config.RemoveRedisKey(tenantCacheKey(strings.ToLower(subdomain)))
}
