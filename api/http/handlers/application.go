package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/candidate"
	"github.com/artem13815/jobportal/pkg/job"
	"github.com/artem13815/jobportal/pkg/scan"
	"github.com/artem13815/jobportal/pkg/schedule"
)

type ApplicationHandler struct {
	uc       application.UseCase
	scans    scan.UseCase
	slots    schedule.UseCase
	validate *validator.Validate
}

func NewApplicationHandler(uc application.UseCase, scans scan.UseCase, slots schedule.UseCase) *ApplicationHandler {
	return &ApplicationHandler{
		uc:       uc,
		scans:    scans,
		slots:    slots,
		validate: validator.New(),
	}
}

// applicationError переводит доменные ошибки в HTTP-коды.
func applicationError(c *fiber.Ctx, err error) error {
	var appVE application.ErrValidation
	var jobVE job.ErrValidation
	var candVE candidate.ErrValidation
	switch {
	case errors.As(err, &appVE), errors.As(err, &jobVE), errors.As(err, &candVE):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrDuplicate):
		return presenter.Error(c, http.StatusConflict, "отклик на эту вакансию уже существует")
	case errors.Is(err, scan.ErrUnavailable):
		return presenter.Error(c, http.StatusBadGateway, "скан временно недоступен, попробуйте позже")
	case errors.Is(err, application.ErrNotFound), errors.Is(err, job.ErrNotFound), errors.Is(err, candidate.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "запись не найдена")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "внутренняя ошибка")
	}
}

// Apply создаёт отклик соискателя на вакансию.
// @Summary Откликнуться на вакансию
// @Tags    Отклики
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 201 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applications [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	a, err := h.uc.Apply(c.Context(), uid, jobID)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, a)
}

// ListForJob возвращает отклики на вакансию её владельцу;
// свежие отклики при этом помечаются просмотренными.
// @Summary Отклики на вакансию
// @Tags    Отклики
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.ListResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.ListForJob(c.Context(), uid, jobID, limit, offset)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.List(c, items, limit, offset)
}

// ListOwn возвращает отклики текущего соискателя.
// @Summary Мои отклики
// @Tags    Отклики
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.ListResponse
// @Router  /applications [get]
func (h *ApplicationHandler) ListOwn(c *fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.ListOwn(c.Context(), uid, limit, offset)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.List(c, items, limit, offset)
}

type scanRequest struct {
	ForceRescan  bool `json:"forceRescan"`
	AutoClassify bool `json:"autoClassify"`
}

// Scan скорирует отклик; посчитанный скор возвращается из кеша,
// пока не запрошен forceRescan.
// @Summary Сканировать отклик
// @Tags    Скан
// @Accept  json
// @Produce json
// @Param   id path string true "ID отклика (UUID)"
// @Param   input body scanRequest false "Опции скана"
// @Security BearerAuth
// @Success 200 {object} scan.Result
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /applications/{id}/scan [post]
func (h *ApplicationHandler) Scan(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	var req scanRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
		}
	}
	out, err := h.scans.Scan(c.Context(), uid, id, scan.Options{
		ForceRescan:  req.ForceRescan,
		AutoClassify: req.AutoClassify,
	})
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type scanPendingRequest struct {
	AutoClassify bool `json:"autoClassify"`
}

// ScanPending сканирует все нескорированные отклики на вакансии рекрутёра.
// Сбой отдельного отклика не прерывает остальные и попадает в агрегат.
// @Summary Пакетный скан откликов
// @Tags    Скан
// @Accept  json
// @Produce json
// @Param   input body scanPendingRequest false "Опции"
// @Security BearerAuth
// @Success 200 {object} scan.BatchResult
// @Router  /applications/scan-pending [post]
func (h *ApplicationHandler) ScanPending(c *fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	var req scanPendingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
		}
	}
	out, err := h.scans.ScanPending(c.Context(), uid, req.AutoClassify)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// actionRequest — сырой конверт; поля валидируются по варианту действия.
type actionRequest struct {
	Action      string `json:"action" validate:"required,oneof=shortlist interview reject message interviewed selected rejected_after_interview hire"`
	Auto        bool   `json:"auto"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        string `json:"time" validate:"omitempty,datetime=15:04"`
	MeetingLink string `json:"meetingLink" validate:"omitempty,url"`
	Notes       string `json:"notes"`
}

// toAction собирает типизированный вариант действия из конверта.
func (r actionRequest) toAction() (application.Action, error) {
	switch application.ActionKind(r.Action) {
	case application.ActionShortlist:
		return application.Shortlist{}, nil
	case application.ActionReject:
		return application.Reject{}, nil
	case application.ActionScheduleInterview:
		if !r.Auto && (r.Date == "" || r.Time == "") {
			return nil, application.ErrValidation("date и time обязательны без auto")
		}
		return application.ScheduleInterview{
			Auto:        r.Auto,
			Date:        r.Date,
			Time:        r.Time,
			MeetingLink: r.MeetingLink,
			Notes:       r.Notes,
		}, nil
	case application.ActionMessage:
		return application.Message{}, nil
	case application.ActionMarkInterviewed:
		return application.MarkInterviewed{}, nil
	case application.ActionSelect:
		return application.Select{}, nil
	case application.ActionRejectAfterInterview:
		return application.RejectAfterInterview{}, nil
	case application.ActionHire:
		return application.Hire{}, nil
	default:
		return nil, application.ErrValidation("неизвестное действие")
	}
}

// Act применяет действие рекрутёра к отклику по таблице переходов.
// @Summary Действие рекрутёра над откликом
// @Tags    Отклики
// @Accept  json
// @Produce json
// @Param   id path string true "ID отклика (UUID)"
// @Param   input body actionRequest true "Действие и его поля"
// @Security BearerAuth
// @Success 200 {object} application.Outcome
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id}/action [post]
func (h *ApplicationHandler) Act(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	act, err := req.toAction()
	if err != nil {
		return applicationError(c, err)
	}
	out, err := h.uc.Act(c.Context(), uid, id, act)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type scheduleRequest struct {
	Auto        bool   `json:"auto"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        string `json:"time" validate:"omitempty,datetime=15:04"`
	MeetingLink string `json:"meetingLink" validate:"omitempty,url"`
	Notes       string `json:"notes"`
}

// Schedule назначает собеседование (эквивалент действия interview).
// @Summary Назначить собеседование
// @Tags    Отклики
// @Accept  json
// @Produce json
// @Param   id path string true "ID отклика (UUID)"
// @Param   input body scheduleRequest true "Слот (или auto)"
// @Security BearerAuth
// @Success 200 {object} application.Outcome
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /applications/{id}/schedule [post]
func (h *ApplicationHandler) Schedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	if err := h.validate.Struct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Act(c.Context(), uid, id, application.ScheduleInterview{
		Auto:        req.Auto,
		Date:        req.Date,
		Time:        req.Time,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
	})
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// NextSlot подбирает ближайший свободный слот в календаре рекрутёра.
// Пустой ответ (slot=null) означает, что в горизонте всё занято.
// @Summary Ближайший свободный слот
// @Tags    Отклики
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /interviews/next-slot [get]
func (h *ApplicationHandler) NextSlot(c *fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	slot, err := h.slots.NextForEmployer(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "не удалось подобрать слот")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"slot": slot})
}
