package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/interfaces/http/common"
)

func (h *Handler) postCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postCreateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, apperr.New(apperr.CodeInvalidParameter, "request body is not valid JSON"))
			return
		}
		if err := requestValidator.Struct(req); err != nil {
			common.WriteError(h.logger, w, mapValidationErr(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		post, err := h.commands.Create(ctx, req.toCommand())
		if err != nil {
			if apperr.From(err).Code == apperr.CodeServerError {
				h.logger.Printf("admin post create failed: %v", err)
			}
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusCreated, "post created", buildAdminPostResponse(*post), nil)
	}
}

func (h *Handler) postUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, apperr.New(apperr.CodeInvalidParameter, "post id is required"))
			return
		}

		var req postUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, apperr.New(apperr.CodeInvalidParameter, "request body is not valid JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		post, err := h.commands.Update(ctx, id, req.toPatch())
		if err != nil {
			if apperr.From(err).Code == apperr.CodeServerError {
				h.logger.Printf("admin post update failed id=%q err=%v", id, err)
			}
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, "post updated", buildAdminPostResponse(*post), nil)
	}
}

func (h *Handler) postDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, apperr.New(apperr.CodeInvalidParameter, "post id is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.commands.Delete(ctx, id); err != nil {
			if apperr.From(err).Code == apperr.CodeServerError {
				h.logger.Printf("admin post delete failed id=%q err=%v", id, err)
			}
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, "post deleted", nil, nil)
	}
}
