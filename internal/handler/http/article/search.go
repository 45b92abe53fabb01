package article

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"newspaper/internal/common/pagination"
	"newspaper/internal/domain/entity"
	"newspaper/internal/handler/http/requestid"
	"newspaper/internal/handler/http/respond"
	"newspaper/internal/observability/logging"
	"newspaper/internal/repository"
	artUC "newspaper/internal/usecase/article"
)

const (
	searchEndpoint = BasePath + "/articles:search"

	// DefaultSearchWindowDays is the publish date window used when the
	// caller omits both date parameters.
	DefaultSearchWindowDays = 10
)

type SearchHandler struct {
	Svc           artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
}

// ServeHTTP 記事検索
// @Summary      記事検索
// @Description  著者・キーワード・公開日で記事を絞り込みます（AND 条件、大文字小文字区別なし）。
// @Description  公開日パラメータを省略すると過去10日間から今日までが対象になり、空文字を指定するとその側は無制限になります
// @Tags         articles
// @Produce      json
// @Param        author          query string false "著者"
// @Param        keyword         query string false "キーワード"
// @Param        fromPublishDate query string false "公開日の開始（YYYY-MM-DD、当日を含む）"
// @Param        toPublishDate   query string false "公開日の終了（YYYY-MM-DD、当日を含む）"
// @Param        limit           query int    false "取得件数" default(10) minimum(1) maximum(100)
// @Param        offset          query int    false "スキップ件数" default(0) minimum(0)
// @Success      200 {array} DTO "検索結果"
// @Failure      400 {object} map[string]string "Bad request"
// @Failure      429 {object} map[string]string "Too many requests"
// @Failure      500 {object} map[string]string "Server error"
// @Router       /articles:search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, loggerOrDefault(h.Logger))

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg.Normalize())
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	params = params.WithDefaults(h.PaginationCfg)

	criteria, err := h.parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	articles, err := h.Svc.Search(ctx, criteria, params)
	if err != nil {
		writeError(w, err)
		return
	}

	pagination.RecordRequest(searchEndpoint, params, len(articles))
	pagination.LogResponse(logger, reqID, params, len(articles), time.Since(startTime))
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

func (h SearchHandler) parseCriteria(q url.Values) (repository.ArticleSearchCriteria, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	today := entity.TruncateToDate(now().UTC())

	var c repository.ArticleSearchCriteria
	if v, ok := q["author"]; ok {
		c.Author = &v[0]
	}
	if v, ok := q["keyword"]; ok {
		c.Keyword = &v[0]
	}

	from, err := dateParam(q, "fromPublishDate", today.AddDate(0, 0, -DefaultSearchWindowDays))
	if err != nil {
		return c, err
	}
	to, err := dateParam(q, "toPublishDate", today)
	if err != nil {
		return c, err
	}
	c.FromPublishDate, c.ToPublishDate = from, to
	return c, nil
}

// dateParam returns def when the parameter is absent and nil when it is
// present but empty.
func dateParam(q url.Values, name string, def time.Time) (*time.Time, error) {
	v, ok := q[name]
	if !ok {
		return &def, nil
	}
	if v[0] == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(v[0])
	if err != nil {
		return nil, &ConversionError{Field: name, Err: err}
	}
	return &d, nil
}
