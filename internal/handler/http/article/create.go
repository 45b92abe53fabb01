package article

import (
	"net/http"

	"newspaper/internal/handler/http/respond"
	artUC "newspaper/internal/usecase/article"
)

type CreateHandler struct{ Svc artUC.Service }

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  新しい記事を作成します。著者とキーワードは大文字化・重複排除・ソートされます
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body CreateRequest true "記事情報"
// @Success      201 {object} DTO "作成された記事（version=0）"
// @Header       201 {string} Location "作成された記事のURL"
// @Failure      400 {object} map[string]string "Bad request - invalid input"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Failure      503 {object} map[string]string "Store unavailable"
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	publishDate, err := parsePublishDate(req.PublishDate)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Header:           req.Header,
		ShortDescription: req.ShortDescription,
		Text:             req.Text,
		PublishDate:      publishDate,
		Authors:          req.Authors,
		Keywords:         req.Keywords,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", BasePath+"/articles/"+created.ID)
	respond.JSON(w, http.StatusCreated, toDTO(created))
}
