package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/shared"
)

const maxPageSize = 100

var (
	errInvalidID    = shared.ErrInvalidInput.WithMessage("Invalid ID")
	errInvalidBody  = shared.NewDomainError("INVALID_JSON", "Request body must be a JSON object")
	errBodyTooLarge = shared.NewDomainError("REQUEST_TOO_LARGE", "Request body too large")
)

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// listFilter reads page, page_size, search, order_by, order_dir and
// filter[column]=value from the query string.
func listFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil && size > 0 {
		filter.PageSize = min(size, maxPageSize)
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	if orderBy := c.Query("order_by"); orderBy != "" {
		filter.OrderBy = orderBy
	}
	if dir := strings.ToLower(c.Query("order_dir")); dir == "asc" || dir == "desc" {
		filter.OrderDir = dir
	}
	for col, value := range c.QueryMap("filter") {
		filter.Filters[col] = filterValue(value)
	}
	return filter
}

func filterValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

// columns reads the comma separated allow-list. Nil means default fields.
func columns(c *gin.Context) []string {
	raw, ok := c.GetQuery("columns")
	if !ok {
		return nil
	}
	var cols []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			cols = append(cols, part)
		}
	}
	return cols
}

// bindFields decodes the body into raw fields, keeping numbers exact.
func bindFields(c *gin.Context) (validation.Fields, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, errInvalidBody.Wrap(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return validation.Fields{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var fields validation.Fields
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, errInvalidBody
	}
	if dec.More() {
		return nil, errInvalidBody
	}
	return fields, nil
}
