package web

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/agrigouv/pspc/internal/config"
	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/middleware/auth"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
	accountView "github.com/agrigouv/pspc/pkg/web/views/account"
	"github.com/agrigouv/pspc/pkg/web/views/health"
	planView "github.com/agrigouv/pspc/pkg/web/views/programmingplan"
	sampleView "github.com/agrigouv/pspc/pkg/web/views/sample"
)

func NewRouter(ctx context.Context, g *gin.Engine) {
	installMiddleware(g)
	installURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

func installURL(_ context.Context, g *gin.Engine) {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)

	aHandle := accountView.NewAccountHandle()
	api.POST("/auth/login", aHandle.SignIn)

	sHandle := sampleView.NewSampleHandle()
	pHandle := planView.NewProgrammingPlanHandle()

	// Protected routes
	{
		protected := api.Group("", auth.Auth())

		protected.GET("/users/:userId/infos", aHandle.GetUserInfos)

		sampleRouter := protected.Group("/samples")
		{
			sampleRouter.GET("", auth.PermissionsCheck(common.ReadSamples), sHandle.FindSamples)
			sampleRouter.GET("/count", auth.PermissionsCheck(common.ReadSamples), sHandle.CountSamples)
			sampleRouter.GET("/:sampleId", auth.PermissionsCheck(common.ReadSamples), sHandle.GetSample)
			sampleRouter.POST("", auth.PermissionsCheck(common.CreateSample), sHandle.CreateSample)
			sampleRouter.PUT("/:sampleId", auth.PermissionsCheck(common.UpdateSample), sHandle.UpdateSample)
			sampleRouter.PUT("/:sampleId/items", auth.PermissionsCheck(common.UpdateSample), sHandle.UpdateSampleItems)
			sampleRouter.DELETE("/:sampleId", auth.PermissionsCheck(common.DeleteSample), sHandle.DeleteSample)
		}

		planRouter := protected.Group("/programming-plans")
		{
			planRouter.GET("", auth.PermissionsCheck(common.ReadProgrammingPlans), pHandle.FindProgrammingPlans)
			planRouter.GET("/:programmingPlanId", auth.PermissionsCheck(common.ReadProgrammingPlans), pHandle.GetProgrammingPlan)

			prescriptionRouter := planRouter.Group("/:programmingPlanId/prescriptions")
			prescriptionRouter.GET("", auth.PermissionsCheck(common.ReadPrescriptions), pHandle.FindPrescriptions)
			prescriptionRouter.POST("", auth.PermissionsCheck(common.CreatePrescription), pHandle.CreatePrescriptions)
			prescriptionRouter.PUT("/:prescriptionId", auth.PermissionsCheck(common.UpdatePrescription), pHandle.UpdatePrescription)
			prescriptionRouter.DELETE("/:prescriptionId", auth.PermissionsCheck(common.DeletePrescription), pHandle.DeletePrescription)
		}
	}
}
