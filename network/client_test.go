package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidpool/vidpool/endpoint"
)

func TestFor(t *testing.T) {
	Convey("Given a TLS server with a self-signed certificate", t, func() {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		get := func(c *http.Client) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
			resp, err := c.Do(req)
			if err == nil {
				_ = resp.Body.Close()
			}
			return err
		}

		Convey("A verifying client should refuse it", func() {
			e := endpoint.Endpoint{BaseURL: server.URL}
			So(get(For(e)), ShouldNotBeNil)
		})

		Convey("An endpoint marked insecure should reach it", func() {
			e := endpoint.Endpoint{BaseURL: server.URL, Insecure: true}
			So(get(For(e)), ShouldBeNil)
		})
	})

	Convey("Clients should be shared per transport flavour", t, func() {
		a := For(endpoint.Endpoint{Name: "a", Insecure: true})
		b := For(endpoint.Endpoint{Name: "b", Insecure: true})
		c := For(endpoint.Endpoint{Name: "c"})
		d := For(endpoint.Endpoint{Name: "d", Fingerprint: true})

		So(a, ShouldPointTo, b)
		So(a, ShouldNotPointTo, c)
		So(d.Transport, ShouldHaveSameTypeAs, &fingerprintTransport{})
	})
}
