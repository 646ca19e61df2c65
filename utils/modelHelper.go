package utils

import (
	"context"
	"reflect"

	"bitbucket.org/mmdatafocus/menu_backend/config"
)

/* DB fetching */

// fetch model from db
// (may return RecordNotFound)
func FetchSingleModel[T any](ctx context.Context, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return &result, nil
}

// check if id exists, scoped to restaurant_id, return RecordNotFound error
func ValidateResourceId[T any](ctx context.Context, restaurantId string, id interface{}) error {

	count, err := ResourceCountWhere[T](ctx, restaurantId, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}

	return nil
}

func ValidateUnique[T any](ctx context.Context, restaurantId string, column string, value interface{}, exceptId interface{}) error {
	var count int64
	var err error
	if reflect.ValueOf(exceptId).IsZero() {
		count, err = ResourceCountWhere[T](ctx, restaurantId, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, restaurantId, column+" = ? AND NOT id = ?", value, exceptId)
	}

	if err != nil {
		return err
	}
	if count > 0 {
		return ErrorDuplicate(column)
	}
	return nil
}

// count records, using WHERE restaurant_id = ? AND $condition
// restaurant_id can be blank for platform-wide lookups
func ResourceCountWhere[T any](ctx context.Context, restaurantId string, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model)
	var count int64
	if restaurantId != "" {
		dbCtx = dbCtx.Where("restaurant_id = ?", restaurantId)
	}
	dbCtx = dbCtx.Where(condition, value...)
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
