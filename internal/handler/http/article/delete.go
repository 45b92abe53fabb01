package article

import (
	"net/http"

	"newspaper/internal/handler/http/pathutil"
	"newspaper/internal/handler/http/respond"
	artUC "newspaper/internal/usecase/article"
)

type DeleteHandler struct{ Svc artUC.Service }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Description  指定されたIDの記事を論理削除します
// @Tags         articles
// @Param        id path string true "記事ID"
// @Success      200 "OK"
// @Failure      400 {object} map[string]string "Bad request - invalid article ID"
// @Failure      404 {object} map[string]string "Not found - article not found"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	respond.Empty(w, http.StatusOK)
}
