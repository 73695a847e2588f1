// Package metrics defines the custom Prometheus collectors of the recipe API.
//
// Collectors register with the default Prometheus registry at init time; the
// HTTP layer exposes them together with per-request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipe"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersCreatedTotal counts persisted accounts.
// Label:
//   - kind: "user" or "superuser"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by kind.",
	},
	[]string{"kind"},
)

// TokensIssuedTotal counts successful credential exchanges.
// Label:
//   - result: "issued" (new token signed) or "reused" (registered token returned)
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens handed out on login, by result.",
	},
	[]string{"result"},
)

// LoginFailuresTotal counts rejected credential exchanges.
var LoginFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of login attempts rejected for bad or missing credentials.",
	},
)

// ── Tag metrics ───────────────────────────────────────────────────────────────

// TagsCreatedTotal counts tags created through the API or the service layer.
var TagsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tags_created_total",
		Help:      "Total number of tags created.",
	},
)
