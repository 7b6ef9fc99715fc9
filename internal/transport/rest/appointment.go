package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookly/internal/domain"
	"bookly/internal/service"
)

// @Summary Создать запись на прием
// @Description Создает запись клиента к специалисту, интервал должен совпадать со свободным слотом
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Параметры записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Время уже занято"
// @Failure 422 {object} errorResponseBody "Время вне расписания специалиста"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotUnavailable):
			conflictResponse(c, err.Error())
		case errors.Is(err, service.ErrOutsideSchedule):
			errorResponse(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrInvalidTimeRange):
			badRequestResponse(c, err.Error())
		default:
			h.logger.Error("ошибка при создании записи", zap.Error(err))
			badRequestResponse(c, err.Error())
		}
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Получить запись по ID
// @Description Возвращает запись, доступна участникам записи и администратору
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Запись"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "запись не найдена")
		return
	}

	if err := h.checkAppointmentAccess(c, appointment); err != nil {
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Обновить запись
// @Description Изменяет статус, время или комментарий записи
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateAppointmentDTO true "Новые данные"
// @Success 200 {object} successResponseBody "Запись обновлена"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Новое время уже занято"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "запись не найдена")
		return
	}

	if err := h.checkAppointmentAccess(c, appointment); err != nil {
		return
	}

	var req domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrSlotUnavailable):
			conflictResponse(c, err.Error())
		case errors.Is(err, service.ErrInvalidTimeRange):
			badRequestResponse(c, err.Error())
		default:
			h.logger.Error("ошибка при обновлении записи", zap.Error(err))
			badRequestResponse(c, err.Error())
		}
		return
	}

	messageResponse(c, http.StatusOK, "запись обновлена")
}

// @Summary Отменить запись
// @Description Переводит запись в статус cancelled, слот снова становится доступным
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 204 {object} nil "Запись отменена"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "запись не найдена")
		return
	}

	if err := h.checkAppointmentAccess(c, appointment); err != nil {
		return
	}

	if err := h.services.Appointment.Cancel(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при отмене записи", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Список записей
// @Description Возвращает записи текущего пользователя с фильтрами и пагинацией
// @Tags Записи
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param start_date query string false "Начало периода (YYYY-MM-DD)"
// @Param end_date query string false "Конец периода (YYYY-MM-DD)"
// @Param page query int false "Номер страницы" default(1)
// @Param page_size query int false "Размер страницы" default(20)
// @Success 200 {object} paginatedResponse "Список записей"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
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

	page, pageSize := getPagination(c)

	filter := domain.AppointmentFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	switch role {
	case domain.UserRoleSpecialist:
		specialist, err := h.services.Specialist.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			notFoundResponse(c, "специалист не найден")
			return
		}
		filter.SpecialistID = &specialist.ID
	case domain.UserRoleAdmin:
		// администратор видит все записи
	default:
		filter.ClientID = &userID
	}

	if status := c.Query("status"); status != "" {
		s := domain.AppointmentStatus(status)
		filter.Status = &s
	}

	if startDate := c.Query("start_date"); startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			badRequestResponse(c, "неверный формат даты начала, ожидается YYYY-MM-DD")
			return
		}
		filter.StartDate = &parsed
	}

	if endDate := c.Query("end_date"); endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			badRequestResponse(c, "неверный формат даты окончания, ожидается YYYY-MM-DD")
			return
		}
		filter.EndDate = &parsed
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении списка записей", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	paginatedSuccessResponse(c, appointments, total, page, pageSize)
}

// checkAppointmentAccess пропускает клиента записи, специалиста записи
// и администратора, остальным пишет ответ с ошибкой.
func (h *Handler) checkAppointmentAccess(c *gin.Context, appointment *domain.Appointment) error {
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

	if role == domain.UserRoleAdmin || appointment.ClientID == userID {
		return nil
	}

	if role == domain.UserRoleSpecialist {
		specialist, err := h.services.Specialist.GetByUserID(c.Request.Context(), userID)
		if err == nil && specialist.ID == appointment.SpecialistID {
			return nil
		}
	}

	forbiddenResponse(c)
	return errDeniedOwnership
}
