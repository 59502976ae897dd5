package handlers

import (
	"fmt"
	"net/http"

	"questionbank/errorz"
	"questionbank/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// Pagination holds the page/limit query parameters. Page is 1-based.
type Pagination struct {
	Page  *int `form:"page"`
	Limit *int `form:"limit"`
}

const DefaultPageLimit = 10

// Requested reports whether either parameter was supplied.
func (p Pagination) Requested() bool {
	return p.Page != nil || p.Limit != nil
}

func (p Pagination) Values() (page, limit int) {
	page, limit = 1, DefaultPageLimit
	if p.Page != nil {
		page = *p.Page
	}
	if p.Limit != nil {
		limit = *p.Limit
	}
	return page, limit
}

// GetQuestions lists the whole bank, or one page of it when page or limit
// is given.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	var params Pagination
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusNotFound, fmt.Errorf("%w: %v", errorz.ErrPaginationInvalid, err))
		return
	}

	if !params.Requested() {
		questions, err := h.questionService.List(c.Request.Context())
		if err != nil {
			respondError(c, readStatus(err), err)
			return
		}
		if len(questions) == 0 {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, questions)
		return
	}

	page, limit := params.Values()
	questions, err := h.questionService.Paginate(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, readStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetRandomQuestion answers 204 when the bank is empty.
func (h *QuestionHandler) GetRandomQuestion(c *gin.Context) {
	question, err := h.questionService.Random(c.Request.Context())
	if err != nil {
		if errorz.KindOf(err) == errorz.KindNotFound {
			c.Status(http.StatusNoContent)
			return
		}
		respondError(c, readStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusNotFound, err)
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, readStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var req services.Question
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	id, err := h.questionService.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var req services.Question
	if err := bindUpdate(c, &req); err != nil {
		respondError(c, updateStatus(err), err)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, updateStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
