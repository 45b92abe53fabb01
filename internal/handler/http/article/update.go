package article

import (
	"net/http"

	"newspaper/internal/domain/entity"
	"newspaper/internal/handler/http/pathutil"
	"newspaper/internal/handler/http/respond"
	artUC "newspaper/internal/usecase/article"
)

type UpdateHandler struct{ Svc artUC.Service }

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  既存の記事の全フィールドを置き換えます。version は保存済みのバージョンより大きい必要があります
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "記事ID"
// @Param        article body UpdateRequest true "更新する記事情報"
// @Success      200 {object} DTO "更新後の記事"
// @Failure      400 {object} map[string]string "Bad request - invalid input or outdated version"
// @Failure      404 {object} map[string]string "Not found - article not found"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Version == nil {
		writeError(w, &entity.ValidationError{Field: "version", Message: "is required"})
		return
	}

	publishDate, err := parsePublishDate(req.PublishDate)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Svc.Update(r.Context(), id, artUC.UpdateInput{
		Header:           req.Header,
		ShortDescription: req.ShortDescription,
		Text:             req.Text,
		PublishDate:      publishDate,
		Authors:          req.Authors,
		Keywords:         req.Keywords,
		Version:          *req.Version,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(updated))
}
