package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params is an offset window over an ordered result.
// Zero values mean "not supplied"; WithDefaults fills them in.
type Params struct {
	Limit  int
	Offset int
}

// ParseQueryParams reads the limit and offset query parameters.
// Missing parameters are left at zero so the service applies its defaults;
// present ones must be integers, limit within [1, MaxLimit] and offset >= 0.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	var params Params
	q := r.URL.Query()

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	if s := q.Get("offset"); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil || offset < 0 {
			return params, fmt.Errorf("invalid query parameter: offset must be a non-negative integer")
		}
		params.Offset = offset
	}

	return params, nil
}

// WithDefaults fills an omitted limit, caps an oversized one and clamps a
// negative offset to zero.
func (p Params) WithDefaults(config Config) Params {
	config = config.Normalize()
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	p.Limit = min(p.Limit, config.MaxLimit)
	p.Offset = max(p.Offset, 0)
	return p
}
