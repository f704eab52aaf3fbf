package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/twcards/card-services/internal/cardsvc/broker"
	"github.com/twcards/card-services/internal/cardsvc/service"
	"github.com/twcards/card-services/internal/cardsvc/store"
)

// AuditReader is the read side of the mutation audit trail. Nil when the
// service runs without postgres.
type AuditReader interface {
	ListRecent(ctx context.Context, limit, offset int64) ([]store.AuditRecord, error)
}

type Handler struct {
	cards   *service.CardService
	search  *service.SearchService
	resolve *service.ResolveService
	stats   *service.StatsService
	audit   AuditReader
	broker  *broker.Broker
	db      *mongo.Database
}

func NewHandler(cards *service.CardService, search *service.SearchService,
	resolve *service.ResolveService, stats *service.StatsService,
	audit AuditReader, b *broker.Broker, db *mongo.Database) *Handler {
	return &Handler{
		cards:   cards,
		search:  search,
		resolve: resolve,
		stats:   stats,
		audit:   audit,
		broker:  b,
		db:      db,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// writeError maps the service error taxonomy onto status codes. NotFound
// responses carry the suggestion list, when any, as data.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &nf):
		rsp := Response{Message: nf.Error(), Code: http.StatusNotFound, Error: nf.Error()}
		if len(nf.Suggestions) > 0 {
			rsp.Data = nf.Suggestions
		}
		h.CreateResponse(w, rsp)
	case errors.Is(err, service.ErrBadID),
		errors.Is(err, service.ErrNoChange),
		errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrBadQuery):
		h.CreateResponse(w, Response{Message: err.Error(), Code: http.StatusBadRequest, Error: err.Error()})
	default:
		h.CreateResponse(w, Response{Message: "internal error", Code: http.StatusInternalServerError, Error: err.Error()})
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			h.CreateResponse(w, Response{
				Message: "database unreachable",
				Code:    http.StatusServiceUnavailable,
				Error:   err.Error(),
			})
			return
		}
	}

	rsp := Response{
		Message: "card service is running at port " + os.Getenv("CARD_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	h.CreateResponse(w, rsp)
}
