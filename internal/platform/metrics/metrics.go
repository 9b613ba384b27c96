package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Postal lookup results.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	postalLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realty_postal_lookups_total",
			Help: "Total number of postal code lookups by result",
		},
		[]string{"result"},
	)

	leadsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realty_leads_submitted_total",
			Help: "Total number of persisted leads by acquisition source",
		},
		[]string{"source"},
	)

	leadNotificationsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realty_lead_notifications_failed_total",
			Help: "Total number of lead notifications that failed and were dropped",
		},
		[]string{"notifier"},
	)

	catalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realty_catalog_requests_total",
			Help: "Total number of catalog listings served, by whether personalization narrowed the result",
		},
		[]string{"personalized"},
	)
)

// PostalLookup records a lookup outcome.
func PostalLookup(result string) {
	postalLookupsTotal.WithLabelValues(result).Inc()
}

// LeadSubmitted records a persisted lead.
func LeadSubmitted(source string) {
	leadsSubmittedTotal.WithLabelValues(source).Inc()
}

// LeadNotificationFailed records a swallowed notification failure.
func LeadNotificationFailed(notifier string) {
	leadNotificationsFailedTotal.WithLabelValues(notifier).Inc()
}

// CatalogServed records a catalog response.
func CatalogServed(personalized bool) {
	catalogRequestsTotal.WithLabelValues(strconv.FormatBool(personalized)).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
