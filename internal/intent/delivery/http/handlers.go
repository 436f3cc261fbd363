package http

import (
	"github.com/gin-gonic/gin"

	"intent-router/pkg/response"
)

// Classify godoc
// @Summary     Classify a query
// @Description Routes a free-text query to the best matching intent, or "none".
// @Tags        Intents
// @Accept      json
// @Produce     json
// @Param       body body classifyReq true "Query"
// @Success     200 {object} intentResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Encoder unavailable"
// @Failure     503 {object} response.Resp "Router not ready"
// @Failure     504 {object} response.Resp "Timed out"
// @Router      /api/v1/intents/classify [POST]
func (h *handler) Classify(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processClassifyReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Classify(ctx, req.Query)
	if err != nil {
		h.l.Warnf(ctx, "uc.Classify: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newIntentResp(out))
}

// ClassifyBatch godoc
// @Summary     Classify several queries
// @Description Classifies up to 100 queries against one index version.
// @Tags        Intents
// @Accept      json
// @Produce     json
// @Param       body body classifyBatchReq true "Queries"
// @Success     200 {object} classifyBatchResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Encoder unavailable"
// @Failure     503 {object} response.Resp "Router not ready"
// @Router      /api/v1/intents/classify/batch [POST]
func (h *handler) ClassifyBatch(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processClassifyBatchReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.ClassifyBatch(ctx, req.Queries)
	if err != nil {
		h.l.Warnf(ctx, "uc.ClassifyBatch: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newClassifyBatchResp(out))
}

// Sync godoc
// @Summary     Sync the reference index
// @Description Reconciles stored utterance embeddings with the current registry.
// @Tags        Intents
// @Produce     json
// @Success     200 {object} syncResp
// @Failure     500 {object} response.Resp "Sync failed"
// @Failure     503 {object} response.Resp "Router misconfigured"
// @Router      /api/v1/intents/sync [POST]
func (h *handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.Sync(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Sync: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newSyncResp(out))
}

// ListRoutes godoc
// @Summary     List routes
// @Description Returns the active route registry in registration order.
// @Tags        Intents
// @Produce     json
// @Success     200 {object} routesResp
// @Router      /api/v1/intents/routes [GET]
func (h *handler) ListRoutes(c *gin.Context) {
	response.OK(c, newRoutesResp(h.uc.Routes()))
}

// UpdateRoutes godoc
// @Summary     Replace routes
// @Description Validates a new registry and syncs the index against it. The previous registry stays active on failure.
// @Tags        Intents
// @Accept      json
// @Produce     json
// @Param       body body updateRoutesReq true "Registry"
// @Success     200 {object} syncResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Sync failed"
// @Router      /api/v1/intents/routes [PUT]
func (h *handler) UpdateRoutes(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateRoutesReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.UpdateRegistry(ctx, req.toRoutes())
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateRegistry: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newSyncResp(out))
}

// Stats godoc
// @Summary     Router stats
// @Description Returns readiness, encoder identity and index size.
// @Tags        Intents
// @Produce     json
// @Success     200 {object} statsResp
// @Router      /api/v1/intents/stats [GET]
func (h *handler) Stats(c *gin.Context) {
	response.OK(c, newStatsResp(h.uc.Stats()))
}
