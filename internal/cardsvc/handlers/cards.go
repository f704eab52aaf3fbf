package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/twcards/card-services/internal/cardsvc/models"
	"github.com/twcards/card-services/internal/cardsvc/service"
)

// parsePage reads skip/limit with defaults skip=0 limit=50; out-of-range
// values are rejected, not clamped.
func parsePage(r *http.Request) (service.Page, error) {
	q := r.URL.Query()
	page := service.DefaultPage()

	if v := q.Get("skip"); v != "" {
		skip, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return service.Page{}, fmt.Errorf("%w: skip must be an integer", service.ErrBadQuery)
		}
		page.Skip = skip
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return service.Page{}, fmt.Errorf("%w: limit must be an integer", service.ErrBadQuery)
		}
		page.Limit = limit
	}

	return service.NewPage(page.Skip, page.Limit)
}

// pathParam unescapes a chi URL parameter; card names routinely carry
// CJK characters and spaces.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	issuer := r.URL.Query().Get("issuer")
	tags := r.URL.Query()["tags"]

	cards, err := h.search.List(r.Context(), page, issuer, tags)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: cards})
}

func (h *Handler) SearchCardsHandler(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		h.writeError(w, fmt.Errorf("%w: keyword is required", service.ErrBadQuery))
		return
	}

	page, err := parsePage(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	cards, err := h.search.Search(r.Context(), page, keyword)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: cards})
}

func (h *Handler) ResolveCardHandler(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if name == "" {
		h.writeError(w, fmt.Errorf("%w: card name is required", service.ErrBadQuery))
		return
	}

	card, err := h.resolve.ResolveByName(r.Context(), name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: card})
}

func (h *Handler) SearchCardsByNameHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("card_name")
	if name == "" {
		h.writeError(w, fmt.Errorf("%w: card_name is required", service.ErrBadQuery))
		return
	}
	exact := r.URL.Query().Get("exact") == "true"

	cards, err := h.search.SearchByName(r.Context(), name, exact)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: cards})
}

func (h *Handler) CardsByIssuerHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	cards, err := h.search.ByIssuer(r.Context(), page, pathParam(r, "issuer"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: cards})
}

func (h *Handler) CardsByTagHandler(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	cards, err := h.search.ByTag(r.Context(), page, pathParam(r, "tag"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: cards})
}

func (h *Handler) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: card})
}

func (h *Handler) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	var card models.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed card payload", service.ErrBadQuery))
		return
	}
	if card.CardName == "" {
		h.writeError(w, fmt.Errorf("%w: cardName is required", service.ErrBadQuery))
		return
	}

	stored, err := h.cards.Create(r.Context(), &card)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "card created", Code: 200, Data: stored})
}

func (h *Handler) UpdateCardHandler(w http.ResponseWriter, r *http.Request) {
	var upd models.CardUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed update payload", service.ErrBadQuery))
		return
	}

	card, err := h.cards.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "card updated", Code: 200, Data: card})
}

func (h *Handler) DeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.cards.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "card deleted",
		Code:    200,
		Data:    map[string]string{"card_id": id},
	})
}

func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Statistics(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: stats})
}

func (h *Handler) AuditHandler(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		h.CreateResponse(w, Response{
			Message: "audit trail is not configured",
			Code:    http.StatusServiceUnavailable,
			Error:   "audit trail is not configured",
		})
		return
	}

	page, err := parsePage(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	records, err := h.audit.ListRecent(r.Context(), page.Limit, page.Skip)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: records})
}
