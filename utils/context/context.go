package context

import (
	"context"

	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func SetUserID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, constant.UserIDKey, id)
}

// GetPrincipal returns the authenticated principal attached by the auth
// middleware, if any.
func GetPrincipal(ctx context.Context) (*model.Principal, bool) {
	v := ctx.Value(constant.PrincipalKey)
	if v == nil {
		return nil, false
	}
	p, ok := v.(*model.Principal)
	return p, ok
}

func SetPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, constant.PrincipalKey, p)
}
