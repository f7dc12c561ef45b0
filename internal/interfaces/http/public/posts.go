package public

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/interfaces/http/common"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

const defaultLimit = 20

func (h *Handler) postListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lang, query, err := parseListQuery(r.URL.Query())
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		posts, meta, err := h.queries.List(ctx, query)
		if err != nil {
			h.logger.Printf("post list fetch failed: %v", err)
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, "success", BuildPostViews(posts, lang), &common.ListMeta{
			Total:      meta.Total,
			Page:       meta.Page,
			Limit:      meta.Limit,
			TotalPages: meta.TotalPages,
		})
	}
}

func (h *Handler) postDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lang, err := domain.ParseLanguage(r.URL.Query().Get("lang"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, apperr.New(apperr.CodeInvalidParameter, "post id is required"))
			return
		}

		post, err := h.queries.Detail(ctx, id)
		if err != nil {
			if !apperr.IsCode(err, apperr.CodeNotFound) {
				h.logger.Printf("post detail fetch failed id=%q err=%v", id, err)
			}
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, "success", BuildPostView(*post, lang), nil)
	}
}

// parseListQuery validates every query parameter before any data fetch:
// language first (cheap request-shape check), then numerics, pagination
// bounds, sort and the openAt time format.
func parseListQuery(values url.Values) (domain.Language, application.ListQuery, error) {
	lang, err := domain.ParseLanguage(values.Get("lang"))
	if err != nil {
		return "", application.ListQuery{}, err
	}

	page, err := common.ParseIntParam("page", values.Get("page"), 1)
	if err != nil {
		return "", application.ListQuery{}, err
	}
	limit, err := common.ParseIntParam("limit", values.Get("limit"), defaultLimit)
	if err != nil {
		return "", application.ListQuery{}, err
	}
	paging, err := application.NewPaging(page, limit)
	if err != nil {
		return "", application.ListQuery{}, err
	}

	sortSpec, err := application.ParseSort(values.Get("sortBy"), values.Get("sortDir"), lang)
	if err != nil {
		return "", application.ListQuery{}, err
	}

	filter := application.Filter{
		Search:     strings.TrimSpace(values.Get("search")),
		District:   strings.TrimSpace(values.Get("district")),
		MobileCode: strings.TrimSpace(values.Get("mobileCode")),
	}

	if filter.DayOfWeek, err = common.ParseOptionalInt("dayOfWeek", values.Get("dayOfWeek")); err != nil {
		return "", application.ListQuery{}, err
	}
	if filter.DayOfWeek != nil {
		if err := domain.ValidateDayOfWeek(*filter.DayOfWeek); err != nil {
			return "", application.ListQuery{}, err
		}
	}

	if filter.Seq, err = common.ParseOptionalInt("seq", values.Get("seq")); err != nil {
		return "", application.ListQuery{}, err
	}

	if openAt := strings.TrimSpace(values.Get("openAt")); openAt != "" {
		normalized, err := domain.ValidateTime(openAt)
		if err != nil {
			return "", application.ListQuery{}, err
		}
		filter.OpenAt = normalized
	}

	return lang, application.ListQuery{
		Filter: filter,
		Sort:   sortSpec,
		Paging: paging,
	}, nil
}
