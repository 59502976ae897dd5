package handlers

import (
	"net/http"

	"questionbank/errorz"
	"questionbank/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WebHandler renders the browser page.
type WebHandler struct {
	questionService *services.QuestionService
}

func NewWebHandler(questionService *services.QuestionService) *WebHandler {
	return &WebHandler{
		questionService: questionService,
	}
}

// Index renders index.html around a randomly sampled question.
func (h *WebHandler) Index(c *gin.Context) {
	question, err := h.questionService.Random(c.Request.Context())
	if err != nil {
		if errorz.KindOf(err) == errorz.KindNotFound {
			c.String(http.StatusNotFound, "404 Not Found")
			return
		}
		logrus.WithError(err).Error("failed to sample question for index page")
		c.String(http.StatusInternalServerError, "500 Internal Server Error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Question": question,
	})
}
