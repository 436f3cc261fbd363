package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"intent-router/internal/chat"
	pkgErrors "intent-router/pkg/errors"
	"intent-router/pkg/response"
)

// Chat godoc
// @Summary     Ask the store assistant
// @Description Classifies the query and answers it with the FAQ or catalog handler. Handler failures still return 200 with an apologetic answer.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string false "Caller id"
// @Param       body body chatReq true "Query"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Reply(ctx, sc, req.Query)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyQuery) {
			response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, "query is required"), nil)
			return
		}
		h.l.Errorf(ctx, "uc.Reply: %v", err)
		response.Error(c, pkgErrors.ErrInternalServer, nil)
		return
	}

	response.OK(c, newChatResp(out))
}

// Routes godoc
// @Summary     List answerable routes
// @Tags        Chat
// @Produce     json
// @Success     200 {object} routesResp
// @Router      /api/v1/chat/routes [GET]
func (h *handler) Routes(c *gin.Context) {
	response.OK(c, routesResp{Routes: h.uc.Routes()})
}
