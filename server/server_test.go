package server

import (
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wilson1070033/webserver/server/protocol"
	"github.com/wilson1070033/webserver/server/router"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()

	srv := New(Config{Addr: "127.0.0.1:0"}, zerolog.Nop())
	srv.Route("/api/data", router.HandlerFunc(func(req *protocol.Request, res *protocol.Response) {
		res.SetContent([]byte(`{"message": "This is JSON data"}`), "application/json")
	}))
	srv.Route("/teapot", router.HandlerFunc(func(req *protocol.Request, res *protocol.Response) {
		res.SetStatus(418, "I'm a teapot")
		res.SetContent([]byte("short and stout"), "text/plain")
	}))

	go srv.Run()

	for i := 0; i < 50; i++ {
		if srv.Addr() != "" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if srv.Addr() == "" {
		t.Fatal("server did not bind")
	}
	t.Cleanup(srv.Stop)
	return srv
}

// dial, send raw bytes, read everything until the server closes
func roundTrip(t *testing.T, addr, raw string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(got)
}

func body(res string) string {
	_, b, _ := strings.Cut(res, "\r\n\r\n")
	return b
}

func TestServeRegisteredRoute(t *testing.T) {
	srv := startTestServer(t)

	got := roundTrip(t, srv.Addr(), "GET /api/data HTTP/1.1\r\nHost: x\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("response = %q, want HTTP/1.1 200 OK status line", got)
	}
	if !strings.Contains(got, "Content-Type: application/json\r\n") {
		t.Errorf("response = %q, want Content-Type: application/json", got)
	}
	if body(got) != `{"message": "This is JSON data"}` {
		t.Errorf("body = %q, want the exact JSON payload", body(got))
	}
}

func TestServeHandlerStatus(t *testing.T) {
	srv := startTestServer(t)

	got := roundTrip(t, srv.Addr(), "GET /teapot HTTP/1.1\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 418 I'm a teapot\r\n") {
		t.Errorf("response = %q, want the handler's status line", got)
	}
}

func TestServeUnknownPath(t *testing.T) {
	srv := startTestServer(t)

	got := roundTrip(t, srv.Addr(), "GET /nope HTTP/1.1\r\nHost: x\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 404 Not Found\r\n") {
		t.Errorf("response = %q, want a 404 status line", got)
	}
	if body(got) != "<html><body><h1>404 Not Found</h1></body></html>" {
		t.Errorf("body = %q, want the canned 404 page", body(got))
	}
}

func TestServeMalformedRequest(t *testing.T) {
	srv := startTestServer(t)

	got := roundTrip(t, srv.Addr(), "garbage\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 400 Bad Request\r\n") {
		t.Errorf("response = %q, want a 400 status line", got)
	}

	// the loop must still accept after a malformed request
	got = roundTrip(t, srv.Addr(), "GET /api/data HTTP/1.1\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("response after bad request = %q, want 200", got)
	}
}

func TestStopDrains(t *testing.T) {
	srv := startTestServer(t)
	addr := srv.Addr()

	srv.Stop()

	if _, err := net.DialTimeout("tcp", addr, 100*time.Millisecond); err == nil {
		t.Error("dial succeeded after Stop()")
	}
}
