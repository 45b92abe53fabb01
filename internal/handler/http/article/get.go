package article

import (
	"net/http"

	"newspaper/internal/handler/http/pathutil"
	"newspaper/internal/handler/http/respond"
	artUC "newspaper/internal/usecase/article"
)

type GetHandler struct{ Svc artUC.Service }

// ServeHTTP 記事詳細取得
// @Summary      記事詳細取得
// @Description  指定されたIDの記事を取得します。削除済みの記事は取得できません
// @Tags         articles
// @Produce      json
// @Param        id path string true "記事ID"
// @Success      200 {object} DTO "記事詳細"
// @Failure      400 {object} map[string]string "Bad request - invalid article ID"
// @Failure      404 {object} map[string]string "Not found - article not found"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	article, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(article))
}
