// Package metrics exposes Prometheus counters for the login and
// registration flows.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ajcloudsolutions/vmailapi/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login and registration outcomes.
const (
	LoginSuccess      = "success"
	LoginRejected     = "rejected"
	LoginLocked       = "locked"
	LoginMalformed    = "malformed"
	LoginError        = "error"
	RegisterSuccess   = "success"
	RegisterInvalid   = "invalid"
	RegisterForbidden = "forbidden"
	RegisterConflict  = "conflict"
	RegisterError     = "error"
)

// Recorder is what the services depend on.
type Recorder interface {
	Login(outcome string)
	Registration(outcome string)
}

// Metrics owns a private registry so tests and multiple servers never
// collide on the global one.
type Metrics struct {
	registry      *prometheus.Registry
	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vmailapi",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vmailapi",
			Name:      "registrations_total",
			Help:      "Mailbox registrations by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Login(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Registration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "Starting metrics server", "address", ln.Addr().String())

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Nop discards all observations.
type Nop struct{}

func (Nop) Login(string)        {}
func (Nop) Registration(string) {}
