package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

func bindJSON[T any](c *gin.Context) (T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errEmptyBody
		}
		return req, err
	}
	return req, nil
}

func (h *handler) processClassifyReq(c *gin.Context) (classifyReq, error) {
	return bindJSON[classifyReq](c)
}

func (h *handler) processClassifyBatchReq(c *gin.Context) (classifyBatchReq, error) {
	return bindJSON[classifyBatchReq](c)
}

func (h *handler) processUpdateRoutesReq(c *gin.Context) (updateRoutesReq, error) {
	return bindJSON[updateRoutesReq](c)
}
