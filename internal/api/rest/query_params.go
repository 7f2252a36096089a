package rest

import (
	"github.com/gin-gonic/gin"
)

const MAX_PAGE_SIZE = 100

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) Desc() bool {
	return o == OrderDesc
}

func (o Order) Asc() bool {
	return o == OrderAsc
}

// HistoryQueryParams holds query parameters for GET /batches/:id/history
type HistoryQueryParams struct {
	Limit  int   `form:"limit,default=20"`
	Offset int   `form:"offset,default=0"`
	Order  Order `form:"order,default=asc"`
}

// ListBatchesQueryParams holds query parameters for GET /batches
type ListBatchesQueryParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ParseHistoryQuery parses query parameters for GET /batches/:id/history
func ParseHistoryQuery(c *gin.Context) (*HistoryQueryParams, error) {
	var params HistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Limit < 0 {
		params.Limit = 0
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	// Validate order; history is chronological by default
	if !params.Order.Asc() && !params.Order.Desc() {
		params.Order = OrderAsc
	}

	return &params, nil
}

// ParseListBatchesQuery parses query parameters for GET /batches
func ParseListBatchesQuery(c *gin.Context) (*ListBatchesQueryParams, error) {
	var params ListBatchesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Limit < 0 {
		params.Limit = 0
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	return &params, nil
}
