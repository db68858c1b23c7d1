package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/http/controller"
	middlewares "github.com/tnqbao/gau-storage-gateway/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	objectRoutes := r.Group("/object")
	{
		objectRoutes.Use(middles.AuthMiddleware)

		objectRoutes.GET("/:bucket_name/*object_name", ctrl.GetObject)
		objectRoutes.POST("/:bucket_name/*object_name", ctrl.CreateObject)
		objectRoutes.PUT("/:bucket_name/*object_name", ctrl.ReplaceObject)
		objectRoutes.DELETE("/:bucket_name/*object_name", ctrl.DeleteObject)
	}

	internalRoutes := r.Group("/internal")
	{
		internalRoutes.Use(middles.AuthMiddleware)

		internalRoutes.GET("/incidents", ctrl.ListIncidents)
	}

	return r
}
