package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookly/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	userIDCtx           = "user_id"
	userRoleCtx         = "user_role"
)

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		for _, ginErr := range c.Errors {
			fields = append(fields, zap.Error(ginErr.Err))
		}

		switch {
		case status >= http.StatusInternalServerError:
			h.logger.Error("запрос завершился ошибкой сервера", fields...)
		case status >= http.StatusBadRequest:
			h.logger.Warn("запрос отклонён", fields...)
		default:
			h.logger.Info("запрос обработан", fields...)
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, Origin, X-Requested-With")
		header.Set("Access-Control-Max-Age", "86400")

		if origin := c.Request.Header.Get("Origin"); origin != "" && c.GetHeader(authorizationHeader) != "" {
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			errorResponse(c, http.StatusUnauthorized, "пустой заголовок авторизации")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || token == "" {
			errorResponse(c, http.StatusUnauthorized, "неверный формат заголовка авторизации")
			c.Abort()
			return
		}

		userID, userRole, err := h.services.Auth.ParseToken(c.Request.Context(), token)
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set(userIDCtx, userID)
		c.Set(userRoleCtx, userRole)

		c.Next()
	}
}

// requireRole пропускает только пользователей с нужной ролью.
// Ставится после authMiddleware.
func (h *Handler) requireRole(required domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := getUserRole(c)
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		if role != required {
			forbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func getUserID(c *gin.Context) (int64, error) {
	value, ok := c.Get(userIDCtx)
	if !ok {
		return 0, errors.New("пользователь не авторизован")
	}

	userID, ok := value.(int64)
	if !ok {
		return 0, errors.New("некорректный ID пользователя")
	}

	return userID, nil
}

func getUserRole(c *gin.Context) (domain.UserRole, error) {
	value, ok := c.Get(userRoleCtx)
	if !ok {
		return "", errors.New("пользователь не авторизован")
	}

	role, ok := value.(domain.UserRole)
	if !ok {
		return "", errors.New("некорректная роль пользователя")
	}

	return role, nil
}
