package rest

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookly/internal/domain"
)

const maxPhotoSize = 5 << 20 // 5 МБ

var errDeniedOwnership = errors.New("доступ запрещен")

// @Summary Создать профиль специалиста
// @Description Создает профиль специалиста для текущего пользователя
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param input body domain.CreateSpecialistDTO true "Данные специалиста"
// @Success 201 {object} map[string]interface{} "ID созданного специалиста"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /specialists [post]
func (h *Handler) createSpecialist(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req domain.CreateSpecialistDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Specialist.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Error("ошибка при создании специалиста", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Получить специалиста по ID
// @Description Возвращает профиль специалиста
// @Tags Специалисты
// @Produce json
// @Param id path int true "ID специалиста"
// @Success 200 {object} domain.Specialist "Профиль специалиста"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Router /specialists/{id} [get]
func (h *Handler) getSpecialistByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	specialist, err := h.services.Specialist.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "специалист не найден")
		return
	}

	successResponse(c, http.StatusOK, specialist)
}

// @Summary Профиль текущего специалиста
// @Description Возвращает профиль специалиста авторизованного пользователя
// @Tags Специалисты
// @Produce json
// @Success 200 {object} domain.Specialist "Профиль специалиста"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Security ApiKeyAuth
// @Router /specialists/me [get]
func (h *Handler) getMySpecialistProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	specialist, err := h.services.Specialist.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, "специалист не найден")
		return
	}

	successResponse(c, http.StatusOK, specialist)
}

// @Summary Обновить профиль специалиста
// @Description Обновляет профиль, доступно владельцу профиля или администратору
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param id path int true "ID специалиста"
// @Param input body domain.UpdateSpecialistDTO true "Новые данные"
// @Success 200 {object} successResponseBody "Профиль обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/{id} [put]
func (h *Handler) updateSpecialist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.checkSpecialistOwnership(c, id); err != nil {
		return
	}

	var req domain.UpdateSpecialistDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Specialist.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении специалиста", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "профиль специалиста обновлен")
}

// @Summary Удалить профиль специалиста
// @Description Удаляет профиль специалиста
// @Tags Специалисты
// @Produce json
// @Param id path int true "ID специалиста"
// @Success 204 {object} nil "Профиль удален"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/{id} [delete]
func (h *Handler) deleteSpecialist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.checkSpecialistOwnership(c, id); err != nil {
		return
	}

	if err := h.services.Specialist.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении специалиста", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Список специалистов
// @Description Возвращает список специалистов с пагинацией
// @Tags Специалисты
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param page_size query int false "Размер страницы" default(20)
// @Success 200 {object} successResponseBody "Список специалистов"
// @Router /specialists [get]
func (h *Handler) getSpecialists(c *gin.Context) {
	page, pageSize := getPagination(c)

	specialists, err := h.services.Specialist.List(c.Request.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.Error("ошибка при получении списка специалистов", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, specialists)
}

// @Summary Загрузить фото профиля
// @Description Загружает фото профиля специалиста (jpg, jpeg, png, до 5 МБ)
// @Tags Специалисты
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID специалиста"
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} successResponseBody "Фото загружено"
// @Failure 400 {object} errorResponseBody "Некорректный файл"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/{id}/photo [post]
func (h *Handler) uploadSpecialistPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.checkSpecialistOwnership(c, id); err != nil {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "файл не найден в запросе")
		return
	}

	if fileHeader.Size > maxPhotoSize {
		badRequestResponse(c, "размер файла превышает 5 МБ")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		badRequestResponse(c, "поддерживаются только файлы jpg, jpeg и png")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("ошибка открытия файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка обработки файла")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка обработки файла")
		return
	}

	if err := h.services.Specialist.UploadProfilePhoto(c.Request.Context(), id, data, fileHeader.Filename); err != nil {
		h.logger.Error("ошибка при загрузке фото", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "фото профиля загружено")
}

// @Summary Удалить фото профиля
// @Description Удаляет фото профиля специалиста
// @Tags Специалисты
// @Produce json
// @Param id path int true "ID специалиста"
// @Success 204 {object} nil "Фото удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/{id}/photo [delete]
func (h *Handler) deleteSpecialistPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.checkSpecialistOwnership(c, id); err != nil {
		return
	}

	if err := h.services.Specialist.DeleteProfilePhoto(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении фото", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	noContentResponse(c)
}

// checkSpecialistOwnership пропускает владельца профиля и администратора,
// остальным пишет ответ с ошибкой.
func (h *Handler) checkSpecialistOwnership(c *gin.Context, specialistID int64) error {
	userID, err := getUserID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return err
	}

	role, err := getUserRole(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return err
	}

	if role == domain.UserRoleAdmin {
		return nil
	}

	specialist, err := h.services.Specialist.GetByID(c.Request.Context(), specialistID)
	if err != nil {
		notFoundResponse(c, "специалист не найден")
		return err
	}

	if specialist.UserID != userID {
		forbiddenResponse(c)
		return errDeniedOwnership
	}

	return nil
}
