package handlers

import (
	"net/http"

	"questionbank/services"

	"github.com/gin-gonic/gin"
)

// AnswerHandler serves the single answer attached to a question under
// /questions/:id/answer.
type AnswerHandler struct {
	answerService *services.AnswerService
}

func NewAnswerHandler(answerService *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
	}
}

func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	questionID, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusNotFound, err)
		return
	}

	answer, err := h.answerService.Get(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, readStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) AddAnswer(c *gin.Context) {
	questionID, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var req services.Answer
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	answer, err := h.answerService.Add(c.Request.Context(), questionID, req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	questionID, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var req services.Answer
	if err := bindUpdate(c, &req); err != nil {
		respondError(c, updateStatus(err), err)
		return
	}

	answer, err := h.answerService.Update(c.Request.Context(), questionID, req)
	if err != nil {
		respondError(c, updateStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	questionID, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.answerService.Delete(c.Request.Context(), questionID); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}
