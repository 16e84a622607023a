package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 10 * time.Second

// fingerprintTransport presents a Chrome 120 client hello. HTTP/2 is tried first;
// when the server does not speak it the request is replayed over HTTP/1.1.
type fingerprintTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

func newFingerprintTransport(insecure bool) *fingerprintTransport {
	return &fingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialChrome(ctx, network, addr, insecure, nil)
			},
		},
		h1: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialChrome(ctx, network, addr, insecure, []string{"http/1.1"})
			},
			IdleConnTimeout: 30 * time.Second,
		},
	}
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	if req.Context().Err() != nil {
		return nil, err
	}

	retry := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, err
		}
		retry.Body = body
	}

	return t.h1.RoundTrip(retry)
}

func dialChrome(ctx context.Context, network, addr string, insecure bool, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName:         host,
		InsecureSkipVerify: insecure, //nolint:gosec
		MinVersion:         tls.VersionTLS12,
		NextProtos:         protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
