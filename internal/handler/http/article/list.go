package article

import (
	"log/slog"
	"net/http"
	"time"

	"newspaper/internal/common/pagination"
	"newspaper/internal/handler/http/requestid"
	"newspaper/internal/handler/http/respond"
	"newspaper/internal/observability/logging"
	artUC "newspaper/internal/usecase/article"
)

const listEndpoint = BasePath + "/articles"

type ListHandler struct {
	Svc           artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 記事一覧取得
// @Summary      記事一覧取得
// @Description  削除されていない記事を新しい順に取得します
// @Tags         articles
// @Produce      json
// @Param        limit  query    int  false  "取得件数" default(10) minimum(1) maximum(100)
// @Param        offset query    int  false  "スキップ件数" default(0) minimum(0)
// @Success      200 {array} DTO "記事一覧"
// @Failure      400 {object} map[string]string "Invalid query parameters"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, loggerOrDefault(h.Logger))

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg.Normalize())
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	params = params.WithDefaults(h.PaginationCfg)
	pagination.LogRequest(logger, reqID, params)

	articles, err := h.Svc.List(ctx, params)
	if err != nil {
		writeError(w, err)
		return
	}

	pagination.RecordRequest(listEndpoint, params, len(articles))
	pagination.LogResponse(logger, reqID, params, len(articles), time.Since(startTime))
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
