package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"crmdash/internal/delivery/http/response"
	"crmdash/internal/domain/entity"
	"crmdash/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RecordHandler holds dependencies for record read and write handlers.
type RecordHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewRecordHandler is the constructor for RecordHandler, injected by Fx.
func NewRecordHandler(uc usecase.SessionUsecase, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetRecord fetches one record, optionally projected to ?fields=a,b,c.
func (h *RecordHandler) GetRecord(c echo.Context) error {
	objectType := entity.ObjectType(c.Param("type"))

	var fields []string
	if raw := c.QueryParam("fields"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			if field = strings.TrimSpace(field); field != "" {
				fields = append(fields, field)
			}
		}
	}

	record, err := h.uc.GetRecord(c.Request().Context(), objectType, c.Param("id"), fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, record, "Record retrieved")
}

// CreateRecord creates a record from the request body fields.
func (h *RecordHandler) CreateRecord(c echo.Context) error {
	var data entity.Record
	if err := c.Bind(&data); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid record payload")
	}

	input := &usecase.MutateInput{
		Kind:       usecase.MutationCreate,
		ObjectType: entity.ObjectType(c.Param("type")),
		Data:       data,
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Mutate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Record created")
}

// UpdateRecord applies a partial update to one record.
func (h *RecordHandler) UpdateRecord(c echo.Context) error {
	var data entity.Record
	if err := c.Bind(&data); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid record payload")
	}

	input := &usecase.MutateInput{
		Kind:       usecase.MutationUpdate,
		ObjectType: entity.ObjectType(c.Param("type")),
		ID:         c.Param("id"),
		Data:       data,
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Mutate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Record updated")
}

// DeleteRecord deletes one record.
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	input := &usecase.MutateInput{
		Kind:       usecase.MutationDelete,
		ObjectType: entity.ObjectType(c.Param("type")),
		ID:         c.Param("id"),
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Mutate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Record deleted")
}
