package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores the correlation id used by Time.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}

func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time logs the duration of the named operation when the returned func runs.
// Pass the address of the named error result so failures are logged too:
//
//	defer obs.Time(ctx, log, "rides.SaveRide")(&err)
func Time(ctx context.Context, log *zap.Logger, name string) func(errp *error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("req_id", reqID),
			zap.String("op", name),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			log.Warn("op failed", append(fields, zap.Error(*errp))...)
			return
		}
		log.Debug("op done", fields...)
	}
}
