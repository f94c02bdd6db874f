package api

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/strandhq/strand/pkg/analyze"
	"github.com/strandhq/strand/pkg/filter"
	"github.com/strandhq/strand/pkg/nlquery"
	"github.com/strandhq/strand/pkg/record"
	"github.com/strandhq/strand/pkg/storage"
)

// ErrorResponse is the JSON body for all error statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateStringRequest is the validated input for record creation. The pointer
// distinguishes a missing value from an empty string.
type CreateStringRequest struct {
	Value *string `json:"value"`
}

// ListResponse contains the records matching a structured filter query.
type ListResponse struct {
	Data           []*record.Record `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied filter.Set       `json:"filters_applied"`
}

// NaturalLanguageResponse contains the records matching a translated
// free-text query, echoing both the original query and the parsed filters.
type NaturalLanguageResponse struct {
	Data             []*record.Record `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}

// InterpretedQuery echoes how a natural-language query was understood.
type InterpretedQuery struct {
	Original      string     `json:"original"`
	ParsedFilters filter.Set `json:"parsed_filters"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleCreateString analyzes and stores a submitted string.
func (s *Server) handleCreateString(c *fiber.Ctx) error {
	var req CreateStringRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "'value' must be a string"})
	}
	if req.Value == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "'value' is required"})
	}

	rec := record.New(*req.Value)
	if err := s.storer.Put(c.Context(), rec); err != nil {
		var conflict storage.ConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: "string already exists"})
		}

		s.logger.Error("failed to store record", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to store record"})
	}

	s.logger.Debug("stored string",
		zap.String("id", rec.ID),
		zap.Int("length", rec.Properties.Length),
	)

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// handleGetString returns the record for a literal string value.
func (s *Server) handleGetString(c *fiber.Ctx) error {
	value, err := url.PathUnescape(c.Params("value"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "malformed value"})
	}

	rec, err := s.storer.Get(c.Context(), analyze.Identity(value))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "string does not exist"})
	}

	return c.JSON(rec)
}

// handleDeleteString removes the record for a literal string value.
func (s *Server) handleDeleteString(c *fiber.Ctx) error {
	value, err := url.PathUnescape(c.Params("value"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "malformed value"})
	}

	if err := s.storer.Delete(c.Context(), analyze.Identity(value)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "string does not exist"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleListStrings returns all records matching the structured filter
// parameters, echoing the filters actually applied.
func (s *Server) handleListStrings(c *fiber.Ctx) error {
	filters, err := parseFilterParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	records, err := s.storer.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list records", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list records"})
	}

	matched := filter.Match(records, filters)

	return c.JSON(ListResponse{
		Data:           matched,
		Count:          len(matched),
		FiltersApplied: filters,
	})
}

// handleFilterByNaturalLanguage translates a free-text query into filters
// and returns the matching records.
func (s *Server) handleFilterByNaturalLanguage(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "query parameter required"})
	}

	filters, err := nlquery.Translate(query)
	if err != nil {
		var parseErr nlquery.ParseError
		if errors.As(err, &parseErr) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: parseErr.Error()})
		}

		var conflict filter.ConflictingFiltersError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: conflict.Error()})
		}

		s.logger.Error("failed to translate query", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to translate query"})
	}

	s.logger.Debug("translated query", zap.String("query", query))

	records, err := s.storer.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list records", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list records"})
	}

	matched := filter.Match(records, filters)

	return c.JSON(NaturalLanguageResponse{
		Data:  matched,
		Count: len(matched),
		InterpretedQuery: InterpretedQuery{
			Original:      query,
			ParsedFilters: filters,
		},
	})
}

// parseFilterParams builds a filter set from query parameters, validating
// each one at the boundary so the core only ever sees well-formed filters.
func parseFilterParams(c *fiber.Ctx) (filter.Set, error) {
	var f filter.Set

	if raw := c.Query("is_palindrome"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return filter.Set{}, errors.New("is_palindrome must be a boolean")
		}
		f.IsPalindrome = &b
	}

	for _, p := range []struct {
		name   string
		target **int
	}{
		{"min_length", &f.MinLength},
		{"max_length", &f.MaxLength},
		{"word_count", &f.WordCount},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter.Set{}, errors.New(p.name + " must be a non-negative integer")
		}
		*p.target = &n
	}

	if raw := c.Query("contains_character"); raw != "" {
		if utf8.RuneCountInString(raw) != 1 {
			return filter.Set{}, errors.New("contains_character must be a single character")
		}
		f.ContainsCharacter = &raw
	}

	return f, nil
}
