package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/storage"
	json "github.com/goccy/go-json"
)

type HealthController struct {
	store     storage.PaymentStoreInterface
	realtime  providers.RealtimeStats
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Store         string  `json:"store"`
	Connections   int     `json:"connections"`
	Rooms         int     `json:"rooms"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	store := "up"
	status := "ok"
	if err := hc.store.Ping(r.Context()); err != nil {
		store = "down"
		status = "degraded"
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        status,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Store:         store,
		Connections:   hc.realtime.ConnectionCount(),
		Rooms:         hc.realtime.RoomCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.PaymentStoreInterface, realtime providers.RealtimeStats) *HealthController {
	return &HealthController{
		store:     store,
		realtime:  realtime,
		startTime: time.Now(),
	}
}
