package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

type contextKey string

const (
	tenantKey       contextKey = "tenant"
	capabilitiesKey contextKey = "capabilities"
)

// Authentication itself is an external collaborator: upstream middleware
// resolves the session and forwards the tenant and capability set in
// headers. requireTenant rejects requests without a resolvable tenant.
func (h *Handler) requireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := strconv.ParseInt(r.Header.Get("X-Tenant-ID"), 10, 64)
		if err != nil || tenantID <= 0 {
			http.Error(w, "missing tenant", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), tenantKey, tenantID)
		if caps := r.Header.Get("X-Capabilities"); caps != "" {
			set := make(map[string]struct{})
			for _, c := range strings.Split(caps, ",") {
				set[strings.TrimSpace(c)] = struct{}{}
			}
			ctx = context.WithValue(ctx, capabilitiesKey, set)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireCapability gates an endpoint behind a named capability. The
// check happens before any mutation.
func (h *Handler) requireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caps, _ := r.Context().Value(capabilitiesKey).(map[string]struct{})
			if _, ok := caps[capability]; !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimit applies the per-tenant limiter to mutating endpoints. Limiter
// failures fail open: a broken limiter store must not take the pipeline
// down.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter != nil {
			key := "tenant:" + strconv.FormatInt(tenantFromContext(r.Context()), 10)
			allowed, err := h.limiter.Allow(r.Context(), key)
			if err != nil {
				h.logger.Warn("rate limiter unavailable", slog.Any("error", err))
			} else if !allowed {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func tenantFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(tenantKey).(int64)
	return id
}
