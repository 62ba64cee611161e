// Package metrics defines and registers all custom Prometheus metrics for the
// notes API. It is the single source of truth for metric names, labels, and
// help strings; request-level metrics come from the echoprometheus middleware
// and are not duplicated here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

// NotesCreatedTotal counts successfully created notes.
var NotesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of notes created.",
	},
)

// NotesDeletedTotal counts permanently deleted notes.
var NotesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of notes deleted.",
	},
)

// LayoutDropsTotal counts position/size blobs that were silently dropped
// because they failed the {x,y}/{width,height} shape check.
// Label:
//   - field: "position" or "size"
var LayoutDropsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layout_drops_total",
		Help:      "Total number of ill-shaped layout blobs dropped from requests.",
	},
	[]string{"field"},
)

// TokensIssuedTotal counts bearer tokens handed out by login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued.",
	},
)

// TokensRevokedTotal counts tokens revoked via logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of access tokens revoked before expiry.",
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "invalid_credentials", "token_missing", "token_expired",
//     "token_invalid" or "token_revoked"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)
