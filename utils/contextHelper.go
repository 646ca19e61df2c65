package utils

import (
	"context"

	"bitbucket.org/mmdatafocus/menu_backend/appctx"
)

var (
	ContextKeyRestaurantId  = appctx.ContextKeyRestaurantId
	ContextKeyUserId        = appctx.ContextKeyUserId
	ContextKeySubdomain     = appctx.ContextKeySubdomain
	ContextKeyLanguage      = appctx.ContextKeyLanguage
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId

	ContextKeyIsAdmin         = appctx.ContextKeyIsAdmin
	ContextKeySkipTenantScope = appctx.ContextKeySkipTenantScope
)

func GetRestaurantIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyRestaurantId)
}

func GetUserIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyUserId)
}

func GetSubdomainFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeySubdomain)
}

func GetLanguageFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyLanguage)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetRestaurantIdInContext(ctx context.Context, restaurantId string) context.Context {
	return appctx.Set(ctx, ContextKeyRestaurantId, restaurantId)
}

func SetUserIdInContext(ctx context.Context, userId int) context.Context {
	return appctx.Set(ctx, ContextKeyUserId, userId)
}

func SetSubdomainInContext(ctx context.Context, subdomain string) context.Context {
	return appctx.Set(ctx, ContextKeySubdomain, subdomain)
}

func SetLanguageInContext(ctx context.Context, language string) context.Context {
	return appctx.Set(ctx, ContextKeyLanguage, language)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func GetIsAdminFromContext(ctx context.Context) (bool, bool) {
	return appctx.GetBool(ctx, ContextKeyIsAdmin)
}

func SetIsAdminInContext(ctx context.Context, isAdmin bool) context.Context {
	return appctx.Set(ctx, ContextKeyIsAdmin, isAdmin)
}

func GetSkipTenantScopeFromContext(ctx context.Context) (bool, bool) {
	return appctx.GetBool(ctx, ContextKeySkipTenantScope)
}

func SetSkipTenantScopeInContext(ctx context.Context, skip bool) context.Context {
	return appctx.Set(ctx, ContextKeySkipTenantScope, skip)
}
