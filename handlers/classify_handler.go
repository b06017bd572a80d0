package handlers

import (
	"context"
	"net/http"

	"news-verifier/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Classifier is the pipeline the handler exposes
type Classifier interface {
	Classify(ctx context.Context, newsText string) (models.ClassificationResult, error)
}

type ClassifyHandler struct {
	classifier Classifier
	logger     *zap.Logger
}

// NewClassifyHandler creates a new classification handler
func NewClassifyHandler(classifier Classifier, logger *zap.Logger) *ClassifyHandler {
	return &ClassifyHandler{
		classifier: classifier,
		logger:     logger,
	}
}

// Classify evaluates a news text as REAL or FAKE
// POST /classify
// Body: {"text": "...", "id": "optional"}
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var req models.ClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.classifier.Classify(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Error("Classification failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		respondInternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ClassificationResponse{
		ID:     req.ID,
		Input:  req.Text,
		Result: result,
	})
}

// HealthCheck is a simple liveness endpoint
// GET /health
func (h *ClassifyHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
