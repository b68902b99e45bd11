package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrigouv/pspc/internal/config"
	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Global().Auth.Secret = "test-secret"
}

func signToken(t *testing.T, userID string, expiresIn time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.Global().Auth.Secret))
	require.NoError(t, err)
	return token
}

func TestParseTokenRoundTrip(t *testing.T) {
	id := uuid.New().String()
	claims, err := ParseToken(signToken(t, id, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
}

func TestParseTokenRejects(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	_, err = ParseToken(signToken(t, uuid.New().String(), -time.Hour))
	assert.Error(t, err, "expired token must be refused")

	other, signErr := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "x"}).
		SignedString([]byte("wrong-secret"))
	require.NoError(t, signErr)
	_, err = ParseToken(other)
	assert.Error(t, err, "token signed with another secret must be refused")
}

func permissionRouter(user *model.User, perms ...common.Permission) *gin.Engine {
	r := gin.New()
	r.GET("/probe",
		func(ctx *gin.Context) {
			if user != nil {
				ctx.Set(USERKEY, user)
			}
		},
		PermissionsCheck(perms...),
		func(ctx *gin.Context) { ctx.Status(http.StatusOK) },
	)
	return r
}

func probe(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	return w.Code
}

func TestPermissionsCheck(t *testing.T) {
	sampler := &model.User{ID: uuid.New(), Role: common.Sampler}
	coordinator := &model.User{ID: uuid.New(), Role: common.RegionalCoordinator}

	assert.Equal(t, http.StatusOK, probe(permissionRouter(sampler, common.CreateSample)))
	assert.Equal(t, http.StatusForbidden, probe(permissionRouter(coordinator, common.CreateSample)))
	assert.Equal(t, http.StatusUnauthorized, probe(permissionRouter(nil, common.CreateSample)))

	// any one of the listed permissions suffices
	assert.Equal(t, http.StatusOK,
		probe(permissionRouter(coordinator, common.CreateSample, common.ReadSamples)))
}

func TestGetCurrentUser(t *testing.T) {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetCurrentUser(ctx))

	user := &model.User{ID: uuid.New(), Role: common.Sampler}
	ctx.Set(USERKEY, user)
	assert.Equal(t, user, GetCurrentUser(ctx))

	// a plain context never carries a user
	assert.Nil(t, GetCurrentUser(context.Background()))
}
