package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/job"
)

type JobHandler struct {
	uc job.UseCase
}

func NewJobHandler(uc job.UseCase) *JobHandler { return &JobHandler{uc: uc} }

type jobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"requiredSkills"`
	ExperienceLevel string   `json:"experienceLevel"`
	Location        string   `json:"location"`
}

// Create создаёт вакансию с требованиями к кандидату.
// @Summary Создать вакансию
// @Tags    Вакансии
// @Accept  json
// @Produce json
// @Param   input body jobRequest true "Данные вакансии"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	j := job.Job{
		ID:              uuid.New(),
		OwnerID:         uid,
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
		Status:          job.StatusActive,
	}
	j, err = h.uc.Create(c.Context(), j)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	return presenter.JSON(c, http.StatusCreated, j)
}

// Get возвращает вакансию по id.
// @Summary Получить вакансию
// @Tags    Вакансии
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "вакансия не найдена")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// List возвращает активные вакансии (для соискателей) или
// собственные вакансии рекрутёра при ?own=true.
// @Summary Список вакансий
// @Tags    Вакансии
// @Produce json
// @Param   own query bool false "Только свои вакансии"
// @Security BearerAuth
// @Success 200 {object} presenter.ListResponse
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	if c.QueryBool("own") {
		uid, err := actorID(c)
		if err != nil {
			return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
		}
		items, err := h.uc.ListOwn(c.Context(), uid, limit, offset)
		if err != nil {
			return presenter.Error(c, http.StatusInternalServerError, "не удалось получить список")
		}
		return presenter.List(c, items, limit, offset)
	}
	items, err := h.uc.ListActive(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "не удалось получить список")
	}
	return presenter.List(c, items, limit, offset)
}

// Update обновляет вакансию владельца.
// @Summary Обновить вакансию
// @Tags    Вакансии
// @Accept  json
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Param   input body jobRequest true "Данные вакансии"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	j := job.Job{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
	}
	if err := h.uc.Update(c.Context(), uid, j); err != nil {
		var ve job.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusNotFound, "вакансия не найдена")
	}
	return c.SendStatus(http.StatusNoContent)
}

type jobStatusRequest struct {
	Status string `json:"status"` // active | closed
}

// SetStatus открывает/закрывает вакансию.
// @Summary Сменить статус вакансии
// @Tags    Вакансии
// @Accept  json
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Param   input body jobStatusRequest true "Новый статус"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/status [patch]
func (h *JobHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	var req jobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	if err := h.uc.SetStatus(c.Context(), uid, id, job.Status(req.Status)); err != nil {
		var ve job.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusNotFound, "вакансия не найдена")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete удаляет вакансию без откликов; с откликами — только закрытие.
// @Summary Удалить вакансию
// @Tags    Вакансии
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный UUID")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		if errors.Is(err, job.ErrReferenced) {
			return presenter.Error(c, http.StatusConflict, "на вакансию есть отклики — закройте её вместо удаления")
		}
		return presenter.Error(c, http.StatusNotFound, "вакансия не найдена")
	}
	return c.SendStatus(http.StatusNoContent)
}
