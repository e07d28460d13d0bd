package models

import (
	"fmt"
	"strconv"
)

// Defaults applied when only one of the two paging parameters is supplied
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// PaginationParams is a 1-based page request
type PaginationParams struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// PaginationResponse wraps one page of items with totals
type PaginationResponse[T any] struct {
	Data       []T `json:"data"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
}

// ParsePaginationParams builds paging parameters from raw query-string values.
// It returns nil when both values are absent, meaning the caller wants everything.
func ParsePaginationParams(pageNumber, pageSize string) (*PaginationParams, error) {
	if pageNumber == "" && pageSize == "" {
		return nil, nil
	}

	params := &PaginationParams{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
	}

	if pageNumber != "" {
		n, err := strconv.Atoi(pageNumber)
		if err != nil {
			return nil, ErrInvalidInput(fmt.Sprintf("invalid pageNumber: %q", pageNumber))
		}
		params.PageNumber = n
	}

	if pageSize != "" {
		n, err := strconv.Atoi(pageSize)
		if err != nil {
			return nil, ErrInvalidInput(fmt.Sprintf("invalid pageSize: %q", pageSize))
		}
		params.PageSize = n
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return params, nil
}

// Validate rejects page numbers and sizes below 1. There is no upper bound.
func (p PaginationParams) Validate() error {
	if p.PageNumber < 1 {
		return ErrInvalidInput("pageNumber must be at least 1")
	}
	if p.PageSize < 1 {
		return ErrInvalidInput("pageSize must be at least 1")
	}
	return nil
}

// Offset returns the number of rows to skip for this page
func (p PaginationParams) Offset() int {
	return CalculateOffset(p.PageNumber, p.PageSize)
}

// CalculateOffset calculates the SQL offset for pagination
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// TotalPages returns ceil(totalRows / pageSize)
func TotalPages(totalRows, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	totalPages := totalRows / pageSize
	if totalRows%pageSize > 0 {
		totalPages++
	}
	return totalPages
}

// NewPagedResponse wraps one page of a larger result set
func NewPagedResponse[T any](items []T, totalRows, pageSize int) *PaginationResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginationResponse[T]{
		Data:       items,
		TotalPages: TotalPages(totalRows, pageSize),
		TotalRows:  totalRows,
	}
}

// NewUnpagedResponse wraps a complete result set as a single page.
// An empty set has zero pages, the same as the paged path.
func NewUnpagedResponse[T any](items []T) *PaginationResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 1
	if len(items) == 0 {
		totalPages = 0
	}
	return &PaginationResponse[T]{
		Data:       items,
		TotalPages: totalPages,
		TotalRows:  len(items),
	}
}
