package routes

import (
	"net/http"

	"questionbank/handlers"
	"questionbank/middleware"
	"questionbank/services"
	"questionbank/web"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the feed carries no private data
	},
}

func SetupRoutes(
	router *gin.Engine,
	questionHandler *handlers.QuestionHandler,
	answerHandler *handlers.AnswerHandler,
	webHandler *handlers.WebHandler,
	hub *services.Hub,
	jwtSecret string,
) {
	router.SetHTMLTemplate(web.Templates())

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/questions", questionHandler.GetQuestions)
		api.GET("/question", questionHandler.GetRandomQuestion)
		api.GET("/questions/:id", questionHandler.GetQuestion)
		api.GET("/questions/:id/answer", answerHandler.GetAnswer)

		// Mutating routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.POST("/questions/add", questionHandler.AddQuestion)
			protected.PUT("/questions/:id", questionHandler.UpdateQuestion)
			protected.DELETE("/questions/:id", questionHandler.DeleteQuestion)

			protected.POST("/questions/:id/answer", answerHandler.AddAnswer)
			protected.PUT("/questions/:id/answer", answerHandler.UpdateAnswer)
			protected.DELETE("/questions/:id/answer", answerHandler.DeleteAnswer)
		}
	}

	// Browser page
	router.GET("/", webHandler.Index)
	router.GET("/index.html", webHandler.Index)

	router.GET("/api-docs/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", web.OpenAPI)
	})

	// WebSocket feed of question bank changes
	router.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade failed")
			return
		}
		hub.RegisterClient(conn)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 Not Found")
	})
}
