package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/candidate"
)

type ProfileHandler struct {
	uc candidate.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewProfileHandler(uc candidate.UseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc, maxBytes: 15 << 20} // 15MB
}

type profileRequest struct {
	FullName        string   `json:"fullName"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experienceLevel"`
	Location        string   `json:"location"`
	PreferredRole   string   `json:"preferredRole"`
}

// Save создаёт или обновляет профиль соискателя.
// @Summary Сохранить профиль соискателя
// @Tags    Профиль
// @Accept  json
// @Produce json
// @Param   input body profileRequest true "Данные профиля"
// @Security BearerAuth
// @Success 200 {object} candidate.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile [put]
func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	p, err := h.uc.Save(c.Context(), candidate.Profile{
		OwnerID:         uid,
		FullName:        req.FullName,
		Skills:          req.Skills,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
		PreferredRole:   req.PreferredRole,
	})
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Get возвращает профиль текущего пользователя.
// @Summary Получить профиль
// @Tags    Профиль
// @Produce json
// @Security BearerAuth
// @Success 200 {object} candidate.Profile
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	p, err := h.uc.Get(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "профиль не найден")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// UploadResume принимает PDF/DOCX, извлекает текст и сохраняет его в профиле
// как вход для сканирования откликов.
// @Summary Загрузить резюме
// @Tags    Профиль
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл резюме (PDF/DOCX)"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile/resume [post]
func (h *ProfileHandler) UploadResume(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	uid, err := actorID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "не удалось определить пользователя")
	}
	text, err := h.uc.AttachResume(c.Context(), uid, fh.Filename, data)
	if err != nil {
		var ve candidate.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save resume")
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"filename":  fh.Filename,
		"sizeB":     fh.Size,
		"textChars": len(text),
	})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
