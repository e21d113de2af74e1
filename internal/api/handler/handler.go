package handler

import (
	"github.com/kangmariz/barangay-complaint-corner/internal/auth"
	"github.com/kangmariz/barangay-complaint-corner/internal/complaint"
	"github.com/kangmariz/barangay-complaint-corner/internal/notify"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	Auth       *auth.Service
	Complaints *complaint.Service
	Hub        *notify.Hub
}

func NewHandler(authSvc *auth.Service, complaintSvc *complaint.Service, hub *notify.Hub) *Handler {
	return &Handler{Auth: authSvc, Complaints: complaintSvc, Hub: hub}
}
