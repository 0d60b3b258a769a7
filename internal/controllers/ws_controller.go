package controllers

import (
	"net/http"

	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/realtime"
	"github.com/gorilla/websocket"
)

type WsController struct {
	logger   providers.Logger
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewWsController(logger providers.Logger, hub *realtime.Hub) *WsController {
	return &WsController{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard clients connect from app origins unknown ahead of
			// time; the gateway has always accepted any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (wc *WsController) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := wc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		wc.logger.Warnf(providers.TypeWs, "Upgrade failed: %s", err)
		return
	}
	wc.hub.HandleConn(conn)
}
