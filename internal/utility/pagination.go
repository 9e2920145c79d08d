package utility

import (
	"math"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// ListQuery is the parsed page/sort/search portion of a list request.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

// ParseListQuery reads the list query params, falling back to page 1,
// the given limit, and updatedAt descending.
func ParseListQuery(r *http.Request, defaultLimit int) ListQuery {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}

	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = "updatedAt"
	}

	sortOrder := r.URL.Query().Get("sortOrder")
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	return ListQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Search:    r.URL.Query().Get("search"),
	}
}

func (q ListQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

func (q ListQuery) Sort() bson.D {
	order := -1
	if q.SortOrder == "asc" {
		order = 1
	}
	return bson.D{{Key: q.SortBy, Value: order}}
}

// Pagination is the block list responses carry alongside their records.
type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

func NewPagination(total int64, page, limit int) Pagination {
	pages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{
		Total:   total,
		Page:    page,
		Pages:   pages,
		HasMore: page < pages,
	}
}
