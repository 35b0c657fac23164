package controllers

import (
	"context"
	"net/http"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and storage connectivity checks.
type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Live always reports ok while the process serves requests.
func (hc *HealthController) Live(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ping reports storage connectivity. A failed ping is still a 200, with
// status "error" in the body.
func (hc *HealthController) Ping(w http.ResponseWriter, r *http.Request) {
	if err := hc.db.Ping(r.Context()); err != nil {
		sendJSON(w, http.StatusOK, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}
