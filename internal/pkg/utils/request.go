package utils

import (
	"net/http"
	"strconv"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
)

func BuildQueryParamsRequest(r *http.Request) *requests.QueryParams {
	page, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamPage))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamPageSize))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	return &requests.QueryParams{
		Page:     page,
		PageSize: pageSize,
		Date:     r.URL.Query().Get(constvars.QueryParamDate),
		Range:    r.URL.Query().Get(constvars.QueryParamRange),
	}
}
