package services

// DashboardRoom receives statsUpdate broadcasts; clients opt in via joinRoom.
const DashboardRoom = "dashboard"

const (
	EventNewPayment  = "newPayment"
	EventStatsUpdate = "statsUpdate"
)

// NotifierInterface is the event-emission seam between the creation
// orchestrator and the realtime layer. Delivery is fire-and-forget;
// implementations log their own failures and never propagate them.
type NotifierInterface interface {
	BroadcastAll(event string, payload interface{})
	BroadcastRoom(room, event string, payload interface{})
}
