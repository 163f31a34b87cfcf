package v1

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gfdmit/web-forum/post-api/config"
	gql "github.com/gfdmit/web-forum/post-api/internal/handlers/http/v1/graphql"
	"github.com/gfdmit/web-forum/post-api/internal/service"
)

func New(svc *service.Service, conf config.HTTPServer, l *log.Logger) (*gin.Engine, error) {
	var (
		router = gin.New()
		posts  = &postHandler{svc: svc}
	)

	router.Use(
		requestID(),
		requestLogger(l),
		recovery(l),
		cors.New(cors.Config{
			AllowOrigins:     conf.CORSAllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Accept", "Content-Type", requestIDHeader},
			ExposeHeaders:    []string{"Link", totalPagesHeader, totalCountHeader, rowsAffectedHeader, requestIDHeader},
			AllowCredentials: false,
			MaxAge:           300 * time.Second,
		}),
		requestTimeout(conf.RequestTimeout),
	)

	gqlHandler, err := gql.New(svc)
	if err != nil {
		return nil, err
	}

	router.GET("/hello", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, World!")
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		apiGroup.Any("/graphql", gin.WrapH(gqlHandler))

		postsGroup := apiGroup.Group("/posts")
		{
			postsGroup.GET("", posts.list)
			postsGroup.POST("", posts.create)
			postsGroup.GET("/:id", posts.get)
			postsGroup.PUT("/:id", posts.update)
			postsGroup.DELETE("/:id", posts.delete)
		}
	}

	return router, nil
}
