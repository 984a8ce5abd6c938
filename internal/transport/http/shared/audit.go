package shared

import (
	"context"
	"net/http"

	"hrpay/internal/domain/audit"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/middleware"
)

type AuditRecorder interface {
	Record(ctx context.Context, evt audit.Event, details any) error
}

// Audit records a mutation against recorder. A nil recorder is a no-op and a
// failed write is only logged.
func Audit(r *http.Request, recorder AuditRecorder, action, entityType, entityID string, details any) {
	if recorder == nil {
		return
	}
	ctx := r.Context()
	evt := audit.Event{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(ctx),
		IP:         middleware.ClientIP(r),
	}
	if err := recorder.Record(ctx, evt, details); err != nil {
		requestctx.Logger(ctx).Warn().Err(err).Str("action", action).Str("entity_id", entityID).Msg("audit write failed")
	}
}
