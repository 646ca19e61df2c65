package models

import (
	"context"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/sirupsen/logrus"
)

// Template holds the public-view styling for a restaurant. CSS is an opaque
// payload injected verbatim; ColorScheme maps style keys to colors.
type Template struct {
	ID          int               `gorm:"primary_key" json:"id"`
	Name        string            `gorm:"size:100;not null" json:"name"`
	CSS         string            `gorm:"type:longtext" json:"css"`
	ColorScheme map[string]string `gorm:"serializer:json" json:"color_scheme"`
	IsPopular   bool              `gorm:"not null;default:false" json:"is_popular"`
	IsNew       bool              `gorm:"not null;default:false" json:"is_new"`
}

// ResolveTemplate returns the template for a restaurant. A nil templateId falls
// back to the configured default. A dangling template reference is a
// data-integrity problem: it is logged and the menu is served without styling
// (nil template, nil error) instead of failing the whole request.
func ResolveTemplate(ctx context.Context, templateId *int) (*Template, error) {
	id := utils.DereferencePtr(templateId, config.DefaultTemplateId())
	if id <= 0 {
		id = config.DefaultTemplateId()
	}

	template, err := utils.FetchSingleModel[Template](ctx, id)
	if err != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"module":      "template",
			"template_id": id,
		}).Error("template referenced but missing; serving menu without styling")
		return nil, nil
	}
	return template, nil
}
