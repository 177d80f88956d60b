package handler

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"
	"github.com/linkward/linkward/internal/service"
)

// aliasHostHeader names the requesting domain when a CDN fronts the
// redirector and rewrites Host.
const aliasHostHeader = "Linkward-Host"

// Redirect serves the resolution entry point on a catch-all route.
type Redirect struct {
	resolver *service.Resolver
	logger   *zap.Logger
}

func NewRedirect(resolver *service.Resolver, logger *zap.Logger) *Redirect {
	return &Redirect{
		resolver: resolver,
		logger:   logger,
	}
}

// Handle maps the request path and host headers onto a resolution request
// and writes the engine's decision back as-is.
func (h *Redirect) Handle(w http.ResponseWriter, r *http.Request) {
	req := models.ResolveRequest{
		RawPath: r.URL.Path,
		Headers: map[string]string{
			models.HeaderAliasHost: requestingDomain(r),
			models.HeaderUserAgent: r.UserAgent(),
		},
	}

	result := h.resolver.Resolve(r.Context(), req)

	for name, value := range result.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(result.StatusCode)
	if result.Body != "" {
		if _, err := w.Write([]byte(result.Body)); err != nil {
			h.logger.Error("unable to write response body", zap.Error(err))
		}
	}
}

func requestingDomain(r *http.Request) string {
	host := r.Header.Get(aliasHostHeader)
	if host == "" {
		host = r.Host
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}
