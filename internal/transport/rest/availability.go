package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookly/internal/domain"
)

// @Summary Создать шаблон доступности
// @Description Создает недельное правило доступности специалиста
// @Tags Доступность
// @Accept json
// @Produce json
// @Param id path int true "ID специалиста"
// @Param input body domain.CreateTemplateDTO true "Параметры шаблона"
// @Success 201 {object} map[string]interface{} "ID созданного шаблона"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/{id}/templates [post]
func (h *Handler) createTemplate(c *gin.Context) {
	specialistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID специалиста")
		return
	}

	if err := h.checkSpecialistOwnership(c, specialistID); err != nil {
		return
	}

	var req domain.CreateTemplateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Availability.CreateTemplate(c.Request.Context(), specialistID, req)
	if err != nil {
		h.logger.Error("ошибка при создании шаблона доступности", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Список шаблонов доступности
// @Description Возвращает недельные правила доступности специалиста
// @Tags Доступность
// @Produce json
// @Param id path int true "ID специалиста"
// @Success 200 {object} successResponseBody "Список шаблонов"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Router /specialists/{id}/templates [get]
func (h *Handler) getTemplates(c *gin.Context) {
	specialistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID специалиста")
		return
	}

	templates, err := h.services.Availability.ListTemplates(c.Request.Context(), specialistID)
	if err != nil {
		h.logger.Error("ошибка при получении шаблонов доступности", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, templates)
}

// @Summary Обновить шаблон доступности
// @Description Обновляет параметры недельного правила
// @Tags Доступность
// @Accept json
// @Produce json
// @Param templateId path int true "ID шаблона"
// @Param input body domain.UpdateTemplateDTO true "Новые параметры"
// @Success 200 {object} successResponseBody "Шаблон обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/templates/{templateId} [put]
func (h *Handler) updateTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("templateId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID шаблона")
		return
	}

	if err := h.checkTemplateOwnership(c, id); err != nil {
		return
	}

	var req domain.UpdateTemplateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Availability.UpdateTemplate(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении шаблона доступности", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "шаблон доступности обновлен")
}

// @Summary Удалить шаблон доступности
// @Description Удаляет недельное правило доступности
// @Tags Доступность
// @Produce json
// @Param templateId path int true "ID шаблона"
// @Success 204 {object} nil "Шаблон удален"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/templates/{templateId} [delete]
func (h *Handler) deleteTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("templateId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID шаблона")
		return
	}

	if err := h.checkTemplateOwnership(c, id); err != nil {
		return
	}

	if err := h.services.Availability.DeleteTemplate(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении шаблона доступности", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Создать исключение доступности
// @Description Создает переопределение доступности на конкретную дату: выходной или особое окно работы
// @Tags Доступность
// @Accept json
// @Produce json
// @Param id path int true "ID специалиста"
// @Param input body domain.CreateExceptionDTO true "Параметры исключения"
// @Success 201 {object} map[string]interface{} "ID созданного исключения"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/{id}/exceptions [post]
func (h *Handler) createException(c *gin.Context) {
	specialistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID специалиста")
		return
	}

	if err := h.checkSpecialistOwnership(c, specialistID); err != nil {
		return
	}

	var req domain.CreateExceptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Availability.CreateException(c.Request.Context(), specialistID, req)
	if err != nil {
		h.logger.Error("ошибка при создании исключения доступности", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Список исключений доступности
// @Description Возвращает исключения специалиста, опционально за период
// @Tags Доступность
// @Produce json
// @Param id path int true "ID специалиста"
// @Param from query string false "Начало периода (YYYY-MM-DD)"
// @Param to query string false "Конец периода (YYYY-MM-DD)"
// @Success 200 {object} successResponseBody "Список исключений"
// @Failure 400 {object} errorResponseBody "Неверный формат параметров"
// @Router /specialists/{id}/exceptions [get]
func (h *Handler) getExceptions(c *gin.Context) {
	specialistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID специалиста")
		return
	}

	exceptions, err := h.services.Availability.ListExceptions(c.Request.Context(), specialistID, c.Query("from"), c.Query("to"))
	if err != nil {
		h.logger.Error("ошибка при получении исключений доступности", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, exceptions)
}

// @Summary Обновить исключение доступности
// @Description Обновляет параметры исключения
// @Tags Доступность
// @Accept json
// @Produce json
// @Param exceptionId path int true "ID исключения"
// @Param input body domain.UpdateExceptionDTO true "Новые параметры"
// @Success 200 {object} successResponseBody "Исключение обновлено"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/exceptions/{exceptionId} [put]
func (h *Handler) updateException(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("exceptionId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID исключения")
		return
	}

	if err := h.checkExceptionOwnership(c, id); err != nil {
		return
	}

	var req domain.UpdateExceptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Availability.UpdateException(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении исключения доступности", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "исключение доступности обновлено")
}

// @Summary Удалить исключение доступности
// @Description Удаляет исключение, возвращая дате недельное расписание
// @Tags Доступность
// @Produce json
// @Param exceptionId path int true "ID исключения"
// @Success 204 {object} nil "Исключение удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specialists/exceptions/{exceptionId} [delete]
func (h *Handler) deleteException(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("exceptionId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID исключения")
		return
	}

	if err := h.checkExceptionOwnership(c, id); err != nil {
		return
	}

	if err := h.services.Availability.DeleteException(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении исключения доступности", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Свободные слоты специалиста
// @Description Генерирует слоты на дату или период по шаблонам, исключениям и существующим записям
// @Tags Доступность
// @Produce json
// @Param id path int true "ID специалиста"
// @Param date query string true "Дата или начало периода (YYYY-MM-DD)"
// @Param to query string false "Конец периода, не включается (YYYY-MM-DD)"
// @Success 200 {object} successResponseBody "Слоты по датам"
// @Failure 400 {object} errorResponseBody "Неверный формат параметров"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Router /specialists/{id}/slots [get]
func (h *Handler) getAvailableSlots(c *gin.Context) {
	specialistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID специалиста")
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "необходимо указать дату")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	slots, err := h.services.Availability.GetAvailableSlots(c.Request.Context(), specialistID, date, c.Query("to"))
	if err != nil {
		h.logger.Error("ошибка при генерации слотов", zap.Int64("specialistID", specialistID), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, gin.H{
		"specialist_id": specialistID,
		"slots":         slots,
	})
}

func (h *Handler) checkTemplateOwnership(c *gin.Context, templateID int64) error {
	tpl, err := h.services.Availability.GetTemplateByID(c.Request.Context(), templateID)
	if err != nil || tpl == nil {
		notFoundResponse(c, "шаблон доступности не найден")
		return errDeniedOwnership
	}
	return h.checkSpecialistOwnership(c, tpl.SpecialistID)
}

func (h *Handler) checkExceptionOwnership(c *gin.Context, exceptionID int64) error {
	exc, err := h.services.Availability.GetExceptionByID(c.Request.Context(), exceptionID)
	if err != nil || exc == nil {
		notFoundResponse(c, "исключение доступности не найдено")
		return errDeniedOwnership
	}
	return h.checkSpecialistOwnership(c, exc.SpecialistID)
}
