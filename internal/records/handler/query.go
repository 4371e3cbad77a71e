package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	apperrors "travelog/pkg/errors"
	"travelog/pkg/model"
)

const (
	paramPage    = "page"
	filterPrefix = "filter["
	sortPrefix   = "sort["
)

// parseListQuery reads bracket-style query parameters, e.g.
// ?filter[from]=TLV&sort[name]=-1&page=2. Sort directions must be 1 or -1;
// anything else is rejected rather than silently defaulted.
func parseListQuery(r *http.Request, pageSize int) (model.ListQuery, error) {
	query := model.ListQuery{
		Filter: map[string]string{},
		Sort:   map[string]int{},
		Page:   1,
		Limit:  pageSize,
	}

	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch {
		case key == paramPage:
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				return model.ListQuery{}, apperrors.InvalidInput(fmt.Sprintf("invalid page parameter: %s", value))
			}
			query.Page = page

		case isBracketParam(key, filterPrefix):
			query.Filter[bracketField(key, filterPrefix)] = value

		case isBracketParam(key, sortPrefix):
			direction, err := strconv.Atoi(value)
			if err != nil || (direction != 1 && direction != -1) {
				return model.ListQuery{}, apperrors.InvalidInput(fmt.Sprintf("invalid sort direction: %s", value))
			}
			query.Sort[bracketField(key, sortPrefix)] = direction
		}
	}

	return query, nil
}

func isBracketParam(key, prefix string) bool {
	return strings.HasPrefix(key, prefix) && strings.HasSuffix(key, "]") && len(key) > len(prefix)+1
}

func bracketField(key, prefix string) string {
	return key[len(prefix) : len(key)-1]
}
