package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/llm"
	"github.com/aerointel/aerointel-backend/internal/services"
)

type TranscriptionHandler struct {
	service *services.TranscriptionService
}

func NewTranscriptionHandler(service *services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{service: service}
}

// Transcribe accepts a multipart upload in the "audio" field.
func (h *TranscriptionHandler) Transcribe(c *fiber.Ctx) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return apperr.Validation("Audio file is required")
	}
	if limit := h.service.MaxBytes(); limit > 0 && fh.Size > limit {
		return apperr.Validationf("Audio file too large. Maximum size is %d MB", limit>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.Validation("Audio file is required")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apperr.Unexpected("failed to read upload", err)
	}

	resp, err := h.service.Transcribe(c.UserContext(), llm.AudioInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
