package policy

import (
	"log/slog"

	"github.com/netlock-dev/netlock/domain/entities"
	"github.com/netlock-dev/netlock/domain/ports"
)

// Ensure implementations satisfy the interface.
var _ ports.DenialHandler = (*SlogDenialHandler)(nil)
var _ ports.DenialHandler = (*NopDenialHandler)(nil)

// SlogDenialHandler reports denials through a structured logger.
type SlogDenialHandler struct {
	// Logger to report through; slog.Default() when nil.
	Logger *slog.Logger
}

func (h *SlogDenialHandler) OnDenial(req entities.ConnectRequest, reason string) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("egress denied",
		"category", req.Category,
		"host", req.Host,
		"port", req.Port,
		"reason", reason,
	)
}

// NopDenialHandler does nothing.
type NopDenialHandler struct{}

func (h *NopDenialHandler) OnDenial(req entities.ConnectRequest, reason string) {}
