package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/services"
	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type PaymentController struct {
	logger  providers.Logger
	service services.PaymentServiceInterface
}

func NewPaymentController(logger providers.Logger, service services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		logger:  logger,
		service: service,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (pc *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var input models.CreatePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	payment, err := pc.service.Create(r.Context(), &input)
	if err != nil {
		var verr *models.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
		case errors.Is(err, models.ErrStoreUnavailable):
			// A dropped write is unacceptable; surface the failure.
			pc.logger.Errorf(providers.TypePost, "Payment creation failed: %s", err)
			writeError(w, http.StatusServiceUnavailable, "payment store unavailable")
		default:
			pc.logger.Errorf(providers.TypePost, "Payment creation failed: %s", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

func (pc *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := services.ListQuery{
		Status:    q.Get("status"),
		Method:    q.Get("method"),
		Receiver:  q.Get("receiver"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
	query.Page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	query.Limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)

	page, err := pc.service.List(r.Context(), query)
	if err != nil {
		pc.logger.Errorf(providers.TypeGet, "Listing payments failed: %s", err)
		writeError(w, http.StatusServiceUnavailable, "payment store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetStats degrades to a zero-valued snapshot when the store is unreachable;
// a dashboard read must never fail hard on aggregation.
func (pc *PaymentController) GetStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := pc.service.GetStats(r.Context())
	if err != nil {
		pc.logger.Errorf(providers.TypeGet, "Stats computation degraded to zero snapshot: %s", err)
		writeJSON(w, http.StatusOK, models.ZeroSnapshot(time.Now()))
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (pc *PaymentController) GetByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/payments/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}

	payment, err := pc.service.Get(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "payment not found")
	case err != nil:
		pc.logger.Errorf(providers.TypeGet, "Fetching payment %s failed: %s", id, err)
		writeError(w, http.StatusServiceUnavailable, "payment store unavailable")
	default:
		writeJSON(w, http.StatusOK, payment)
	}
}
