package context

import (
	"context"

	"github.com/putrawijaya/fulfillment/constant"
)

func GetActorID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.ActorIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
