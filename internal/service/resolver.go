package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"
	"github.com/linkward/linkward/internal/storage"
)

// AccessLogSink receives best-effort access-log appends. Enqueue must not
// block; it reports false when the entry was dropped.
type AccessLogSink interface {
	Enqueue(linkID, logKey string, lines []string) bool
}

// Resolver decides the redirect outcome for an identifier, applying
// alias-override precedence and date-window checks. It never mutates a
// record beyond the best-effort access-log append.
type Resolver struct {
	store  Store
	sink   AccessLogSink
	logger *zap.Logger
	now    func() time.Time
}

// NewResolver builds a Resolver. sink may be nil, in which case access-log
// appends are made synchronously, still best-effort.
func NewResolver(store Store, sink AccessLogSink, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// Resolve maps a raw request path and headers onto a redirect decision.
// It always returns a response; unexpected store failures come back as a
// bare 500.
func (r *Resolver) Resolve(ctx context.Context, req models.ResolveRequest) models.ResolveResponse {
	id := strings.TrimLeft(req.RawPath, "/")
	if id == "" {
		return models.ResolveResponse{StatusCode: http.StatusBadRequest, Body: "Missing link id"}
	}

	record, _, err := r.store.GetLink(ctx, id)
	if err != nil {
		r.logger.Error("unable to resolve link",
			zap.String("id", id),
			zap.Any("request", req),
			zap.Error(err))
		return models.ResolveResponse{StatusCode: http.StatusInternalServerError}
	}
	if record == nil {
		return models.ResolveResponse{StatusCode: http.StatusNotFound, Body: "Link not found"}
	}

	now := r.now()
	r.logAccess(ctx, id, now, req.Headers[models.HeaderUserAgent])

	if record.Deleted() {
		return models.ResolveResponse{StatusCode: http.StatusForbidden, Body: "Link already deleted"}
	}

	nowMs := now.UnixMilli()
	start, end := effectiveWindow(record, req.Headers[models.HeaderAliasHost], nowMs)
	if nowMs < start {
		return models.ResolveResponse{StatusCode: http.StatusNotFound, Body: "Link not found"}
	}
	if nowMs > end {
		return models.ResolveResponse{StatusCode: http.StatusForbidden, Body: "Link expired"}
	}

	return models.ResolveResponse{
		StatusCode: http.StatusFound,
		Headers:    map[string]string{"Location": record.Destination},
	}
}

// logAccess appends one "Link accessed" line to the record's audit log.
// The append never blocks or fails the redirect decision; a full queue or
// a failed write is logged and forgotten.
func (r *Resolver) logAccess(ctx context.Context, id string, now time.Time, userAgent string) {
	if userAgent == "" {
		userAgent = "undefined-user-agent"
	}
	key := millisKey(now)
	lines := []string{"Link accessed", userAgent}

	if r.sink != nil {
		if !r.sink.Enqueue(id, key, lines) {
			r.logger.Warn("access log queue full, entry dropped", zap.String("id", id))
		}
		return
	}

	if _, err := r.store.UpdateLink(ctx, id, storage.LinkPatch{LogKey: key, LogLines: lines}); err != nil {
		r.logger.Warn("unable to append access log", zap.String("id", id), zap.Error(err))
	}
}

// effectiveWindow resolves the availability window for a request: an alias
// entry matching the requesting domain exactly overrides the record's own
// bounds field by field, and any bound still missing defaults to now, which
// makes that side of the window immediately satisfied.
func effectiveWindow(record *models.LinkRecord, domain string, nowMs int64) (int64, int64) {
	start, end := nowMs, nowMs
	if record.StartDate != nil {
		start = *record.StartDate
	}
	if record.EndDate != nil {
		end = *record.EndDate
	}
	if domain != "" {
		if rule, ok := record.Aliases[domain]; ok {
			if rule.StartDate != nil {
				start = *rule.StartDate
			}
			if rule.EndDate != nil {
				end = *rule.EndDate
			}
		}
	}
	return start, end
}
