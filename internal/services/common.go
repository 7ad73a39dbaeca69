package services

import (
	"strings"

	"github.com/aerointel/aerointel-backend/internal/dto"
)

func paginate[T any](items []T, limit, offset, defaultLimit int) ([]T, dto.Pagination) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	total := len(items)
	start := min(offset, total)
	end := start + min(limit, total-start)

	page := make([]T, end-start)
	copy(page, items[start:end])
	return page, dto.NewPagination(total, limit, offset)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
