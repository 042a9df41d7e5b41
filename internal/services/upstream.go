package services

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"travelplanner/internal/domain"
)

// Doer is satisfied by *http.Client; tests substitute recording fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const maxUpstreamBody = 1 << 20

// doUpstream sends req once and returns the body of a 2xx response. Any other
// status becomes an UpstreamError carrying the upstream text; transport
// failures become a 502 UpstreamError.
func doUpstream(client Doer, req *http.Request, service, failure string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Service: service, Status: http.StatusBadGateway, Msg: failure, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxUpstreamBody))
	if err != nil {
		return nil, domain.UpstreamError{Service: service, Status: http.StatusBadGateway, Msg: failure, Err: fmt.Errorf("read body: %w", err)}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return body, domain.UpstreamError{Service: service, Status: res.StatusCode, Msg: failure, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
