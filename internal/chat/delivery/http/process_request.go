package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"intent-router/internal/model"
)

var errEmptyBody = errors.New("request body is required")

const headerUserID = "X-User-ID"

func (h *handler) processChatReq(c *gin.Context) (chatReq, model.Scope, error) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, model.Scope{}, errEmptyBody
		}
		return req, model.Scope{}, err
	}

	sc := model.Scope{UserID: req.UserID, Channel: "http"}
	if sc.UserID == "" {
		sc.UserID = c.GetHeader(headerUserID)
	}
	if sc.UserID == "" {
		sc.UserID = "anonymous"
	}
	return req, sc, nil
}
