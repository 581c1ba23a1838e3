package rpc

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	networkMarkers = []string{
		"connection refused",
		"no such host",
		"connection reset",
		"i/o timeout",
	}
	notFoundMarkers = []string{
		"no such contract",
	}
	insufficientFundsMarkers = []string{
		"insufficient funds",
		"insufficient fee",
	}
)

// isNetworkError reports whether err means the node could not be reached,
// as opposed to the node answering with an error.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// a status means the node answered
	if st, ok := status.FromError(err); ok {
		return st.Code() == codes.Unavailable || st.Code() == codes.DeadlineExceeded
	}
	return containsAny(err.Error(), networkMarkers)
}

func isNotFoundError(err error) bool {
	if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
		return true
	}
	return containsAny(err.Error(), notFoundMarkers)
}

func isInsufficientFunds(msg string) bool {
	return containsAny(msg, insufficientFundsMarkers)
}

// classifyQueryError maps a failed smart query onto the query error kinds.
func classifyQueryError(err error, contract string) error {
	switch {
	case isNetworkError(err):
		return ErrNetwork.Wrapf("query %s: %s", contract, err)
	case isNotFoundError(err):
		return ErrNotFound.Wrapf("contract %s: %s", contract, err)
	default:
		return ErrContractQuery.Wrapf("contract %s: %s", contract, err)
	}
}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
