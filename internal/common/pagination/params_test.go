package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"newspaper/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	config := pagination.Config{
		DefaultLimit: 10,
		MaxLimit:     100,
	}

	tests := []struct {
		name      string
		query     string
		want      pagination.Params
		wantError bool
	}{
		{
			name:  "valid parameters",
			query: "limit=30&offset=60",
			want:  pagination.Params{Limit: 30, Offset: 60},
		},
		{
			name:  "no parameters (left for service defaults)",
			query: "",
			want:  pagination.Params{},
		},
		{
			name:  "only offset parameter",
			query: "offset=5",
			want:  pagination.Params{Offset: 5},
		},
		{
			name:  "only limit parameter",
			query: "limit=50",
			want:  pagination.Params{Limit: 50},
		},
		{
			name:  "limit at maximum",
			query: "limit=100",
			want:  pagination.Params{Limit: 100},
		},
		{
			name:  "offset zero",
			query: "offset=0",
			want:  pagination.Params{},
		},
		{name: "limit zero", query: "limit=0", wantError: true},
		{name: "limit above maximum", query: "limit=101", wantError: true},
		{name: "negative limit", query: "limit=-1", wantError: true},
		{name: "non-numeric limit", query: "limit=ten", wantError: true},
		{name: "negative offset", query: "offset=-1", wantError: true},
		{name: "non-numeric offset", query: "offset=abc", wantError: true},
		{name: "decimal offset", query: "offset=1.5", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?"+tt.query, nil)
			got, err := pagination.ParseQueryParams(req, config)

			if (err != nil) != tt.wantError {
				t.Fatalf("ParseQueryParams() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && got != tt.want {
				t.Errorf("ParseQueryParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseQueryParams_ErrorMessages(t *testing.T) {
	t.Parallel()

	config := pagination.Config{DefaultLimit: 10, MaxLimit: 50}

	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{
			name:    "invalid limit",
			query:   "limit=0",
			wantMsg: "invalid query parameter: limit must be between 1 and 50",
		},
		{
			name:    "invalid offset",
			query:   "offset=-3",
			wantMsg: "invalid query parameter: offset must be a non-negative integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?"+tt.query, nil)
			_, err := pagination.ParseQueryParams(req, config)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParams_WithDefaults(t *testing.T) {
	t.Parallel()

	config := pagination.Config{DefaultLimit: 10, MaxLimit: 100}

	tests := []struct {
		name   string
		params pagination.Params
		want   pagination.Params
	}{
		{name: "omitted", params: pagination.Params{}, want: pagination.Params{Limit: 10}},
		{name: "negative limit", params: pagination.Params{Limit: -5, Offset: 3}, want: pagination.Params{Limit: 10, Offset: 3}},
		{name: "limit capped", params: pagination.Params{Limit: 500}, want: pagination.Params{Limit: 100}},
		{name: "negative offset", params: pagination.Params{Limit: 20, Offset: -1}, want: pagination.Params{Limit: 20}},
		{name: "unchanged", params: pagination.Params{Limit: 25, Offset: 50}, want: pagination.Params{Limit: 25, Offset: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.params.WithDefaults(config); got != tt.want {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("zero config uses package defaults", func(t *testing.T) {
		t.Parallel()
		want := pagination.DefaultConfig().DefaultLimit
		if got := (pagination.Params{}).WithDefaults(pagination.Config{}); got.Limit != want {
			t.Errorf("Limit = %d, want %d", got.Limit, want)
		}
	})
}
