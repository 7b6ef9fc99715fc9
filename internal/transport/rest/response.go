package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{Status: "success", Data: data})
}

func createdResponse(c *gin.Context, data interface{}) {
	successResponse(c, http.StatusCreated, data)
}

func messageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, successResponseBody{Status: "success", Message: message})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := (totalCount + pageSize - 1) / pageSize

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

func conflictResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusConflict, message)
}
