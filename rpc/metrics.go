package rpc

import (
	"context"
	"errors"
	"time"

	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
)

const metricsNamespace = "cwscripts"

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// metrics is nil safe; a client without WithMetrics records nothing.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "Queries and transactions sent, by operation and outcome.",
	}, []string{"operation", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "rpc",
		Name:      "grpc_call_duration_seconds",
		Help:      "Duration of gRPC calls to the node, by method.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"method"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &metrics{requests: requests, duration: duration}, nil
}

// register returns the collector already registered under the same name, so
// several clients in one process share their series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
}

func (m *metrics) observeResult(operation string, res *TransactionResult, err error) {
	switch {
	case err != nil:
		m.observe(operation, outcomeError)
	case res != nil && !res.Success:
		m.observe(operation, outcomeRejected)
	default:
		m.observe(operation, outcomeSuccess)
	}
}

// meteredConn records the duration of every unary call made through the
// wrapped connection.
type meteredConn struct {
	gogogrpc.ClientConn
	duration *prometheus.HistogramVec
}

func newMeteredConn(conn gogogrpc.ClientConn, m *metrics) gogogrpc.ClientConn {
	if m == nil {
		return conn
	}
	return &meteredConn{ClientConn: conn, duration: m.duration}
}

func (c *meteredConn) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	defer func(start time.Time) {
		c.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}(time.Now())

	return c.ClientConn.Invoke(ctx, method, args, reply, opts...)
}
