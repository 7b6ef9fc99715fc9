package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookly/internal/domain"
)

// @Summary Создать пользователя
// @Description Создает нового пользователя (только для администраторов)
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param input body domain.CreateUserDTO true "Данные пользователя"
// @Success 201 {object} map[string]interface{} "ID созданного пользователя"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req domain.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.User.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании пользователя", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Получить текущего пользователя
// @Description Возвращает данные авторизованного пользователя
// @Tags Пользователи
// @Produce json
// @Success 200 {object} domain.User "Данные пользователя"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, "пользователь не найден")
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Получить пользователя по ID
// @Description Возвращает информацию о пользователе по указанному ID
// @Tags Пользователи
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} domain.User "Данные пользователя"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "пользователь не найден")
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Обновить пользователя
// @Description Обновляет данные пользователя, доступно самому пользователю или администратору
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param input body domain.UpdateUserDTO true "Новые данные"
// @Success 200 {object} successResponseBody "Данные обновлены"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	if userID != id && role != domain.UserRoleAdmin {
		forbiddenResponse(c)
		return
	}

	var req domain.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.User.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении пользователя", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "данные пользователя обновлены")
}

// @Summary Сменить пароль
// @Description Изменяет пароль пользователя после проверки текущего
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param input body domain.PasswordUpdateDTO true "Текущий и новый пароль"
// @Success 200 {object} successResponseBody "Пароль изменен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users/{id}/password [put]
func (h *Handler) updatePassword(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	if userID != id {
		forbiddenResponse(c)
		return
	}

	var req domain.PasswordUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.User.UpdatePassword(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при смене пароля", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "пароль изменен")
}

// @Summary Удалить пользователя
// @Description Удаляет пользователя (только для администраторов)
// @Tags Пользователи
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 204 {object} nil "Пользователь удален"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.User.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении пользователя", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Список пользователей
// @Description Возвращает список пользователей с пагинацией (только для администраторов)
// @Tags Пользователи
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param page_size query int false "Размер страницы" default(20)
// @Success 200 {object} successResponseBody "Список пользователей"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) getUsers(c *gin.Context) {
	page, pageSize := getPagination(c)

	users, err := h.services.User.List(c.Request.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.Error("ошибка при получении списка пользователей", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, users)
}

func getPagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return page, pageSize
}
