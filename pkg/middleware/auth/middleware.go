package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agrigouv/pspc/internal/config"
	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
	"github.com/agrigouv/pspc/pkg/middleware/redis"
	"github.com/agrigouv/pspc/pkg/repo"
	"github.com/agrigouv/pspc/pkg/repo/model"
	uStore "github.com/agrigouv/pspc/pkg/repo/user"
)

// Auth authenticates the request from the x-access-token header (or query
// parameter) and loads the user onto the context. Missing or invalid
// credentials abort with 401.
func Auth() gin.HandlerFunc {
	return authWith(uStore.NewUserRepo())
}

func authWith(userStore repo.UserRepo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := ctx.GetHeader(TokenHeader)
		if tokenString == "" {
			tokenString = ctx.Query(TokenHeader)
		}
		if tokenString == "" {
			common.ReplyErr(ctx, code.UnLogin)
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			logger.Errorf(ctx, "token validation failed: %v", err)
			common.ReplyErr(ctx, code.InvalidToken)
			return
		}

		userID, err := uuid.FromString(claims.UserID)
		if err != nil {
			common.ReplyErr(ctx, code.InvalidToken)
			return
		}

		user, err := lookupUser(ctx, userStore, userID)
		if err != nil {
			common.ReplyErr(ctx, err)
			return
		}
		if user == nil {
			common.ReplyErr(ctx, code.UserMissing)
			return
		}

		ctx.Set(USERKEY, user)
		ctx.Next()
	}
}

// lookupUser goes through the redis cache first; a miss falls back to
// postgres and refills the cache.
func lookupUser(ctx context.Context, userStore repo.UserRepo, id uuid.UUID) (*model.User, error) {
	key := fmt.Sprintf("pspc:user:%s", id)

	if client := redis.GetClient(); client != nil {
		if raw, err := client.Get(ctx, key).Bytes(); err == nil {
			user := &model.User{}
			if err := json.Unmarshal(raw, user); err == nil {
				return user, nil
			}
		}
	}

	user, err := userStore.FindUnique(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	if client := redis.GetClient(); client != nil {
		if raw, err := json.Marshal(user); err == nil {
			ttl := time.Duration(config.Global().Auth.UserCacheTTLSec) * time.Second
			if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
				logger.Warnf(ctx, "cache user %s err: %v", id, err)
			}
		}
	}
	return user, nil
}

// PermissionsCheck gates a route on the role to permission table. It runs
// after Auth.
func PermissionsCheck(permissions ...common.Permission) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := GetCurrentUser(ctx)
		if user == nil {
			common.ReplyErr(ctx, code.UnLogin)
			return
		}
		for _, p := range permissions {
			if user.HasPermission(p) {
				ctx.Next()
				return
			}
		}
		common.ReplyErr(ctx, code.PermissionErr)
	}
}

func GetCurrentUser(ctx context.Context) *model.User {
	gCtx, ok := ctx.(*gin.Context)
	if !ok {
		return nil
	}
	user, exists := gCtx.Get(USERKEY)
	if !exists {
		return nil
	}
	u, ok := user.(*model.User)
	if !ok {
		return nil
	}
	return u
}
