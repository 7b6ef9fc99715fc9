package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookly/config"
	"bookly/internal/domain"
	"bookly/internal/service"
	"bookly/internal/transport/websocket"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	hub      *websocket.Hub
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, hub *websocket.Hub) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		hub:      hub,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.requireRole(domain.UserRoleAdmin))
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		specialists := api.Group("/specialists")
		{
			specialists.GET("/", h.getSpecialists)
			specialists.GET("/me", h.authMiddleware(), h.getMySpecialistProfile)
			specialists.GET("/:id", h.getSpecialistByID)

			// Генерация слотов доступна без авторизации: клиент выбирает
			// время до записи на прием.
			specialists.GET("/:id/slots", h.getAvailableSlots)

			auth := specialists.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createSpecialist)
				auth.PUT("/:id", h.updateSpecialist)
				auth.DELETE("/:id", h.deleteSpecialist)

				auth.POST("/:id/photo", h.uploadSpecialistPhoto)
				auth.DELETE("/:id/photo", h.deleteSpecialistPhoto)

				specialistRoutes := auth.Group("/", h.requireRole(domain.UserRoleSpecialist))
				{
					specialistRoutes.POST("/:id/templates", h.createTemplate)
					specialistRoutes.PUT("/templates/:templateId", h.updateTemplate)
					specialistRoutes.DELETE("/templates/:templateId", h.deleteTemplate)

					specialistRoutes.POST("/:id/exceptions", h.createException)
					specialistRoutes.PUT("/exceptions/:exceptionId", h.updateException)
					specialistRoutes.DELETE("/exceptions/:exceptionId", h.deleteException)
				}
			}

			specialists.GET("/:id/templates", h.getTemplates)
			specialists.GET("/:id/exceptions", h.getExceptions)
		}

		appointments := api.Group("/appointments")
		{
			auth := appointments.Group("/")
			auth.Use(h.authMiddleware())
			{
				auth.POST("/", h.createAppointment)
				auth.GET("/:id", h.getAppointmentByID)
				auth.PUT("/:id", h.updateAppointment)
				auth.DELETE("/:id", h.cancelAppointment)
				auth.GET("/", h.getAppointments)
			}
		}
	}

	// Подписка на изменения доступности специалистов.
	router.GET("/ws/availability", h.hub.HandleWebSocket)
}
