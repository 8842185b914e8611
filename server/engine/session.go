// session management and per-connection state machine
// the engine moves bytes and drives the lifecycle, routing lives above
package engine

import (
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/wilson1070033/webserver/server/protocol"
)

// DispatchFunc maps a parsed request to a finished response
type DispatchFunc func(*protocol.Request) *protocol.Response

// Session owns one accepted connection from the first read to close.
// Lifecycle: read once -> parse -> dispatch -> write -> close, and the
// close happens on every path including failures.
type Session struct {
	conn net.Conn
	pool *Pool

	buf []byte
	raw []byte // the bytes of the single bounded read

	req *protocol.Request
	res *protocol.Response

	dispatch     DispatchFunc
	log          zerolog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type stateFunc func(*Session) stateFunc

func NewSession(conn net.Conn, pool *Pool, dispatch DispatchFunc, log zerolog.Logger, readTimeout, writeTimeout time.Duration) *Session {
	return &Session{
		conn:         conn,
		pool:         pool,
		dispatch:     dispatch,
		log:          log,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Run drives the connection through its states until the terminal one
func (s *Session) Run() {
	s.buf = s.pool.getBuf()
	defer s.pool.putBuf(s.buf)

	for state := readRequest; state != nil; {
		state = state(s)
	}
}

// one bounded read; a request has to fit in the session buffer,
// there is no loop topping it up
func readRequest(s *Session) stateFunc {
	if s.readTimeout > 0 {
		s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}

	n, err := s.conn.Read(s.buf)
	if n <= 0 {
		// nothing arrived, nothing to answer
		if err != nil && err != io.EOF {
			s.log.Warn().Err(err).Msg("read failed")
		}
		return closeSession
	}

	s.raw = s.buf[:n]
	return parseRequest
}

// a malformed request is answered with 400, it never propagates past
// this session
func parseRequest(s *Session) stateFunc {
	req, err := protocol.ParseRequest(s.raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("malformed request")
		s.res = protocol.BadRequest()
		return writeResponse
	}

	s.req = req
	return dispatchRequest
}

func dispatchRequest(s *Session) stateFunc {
	s.res = s.safeDispatch(s.req)
	return writeResponse
}

// safeDispatch contains handler panics so one bad request cannot take
// the accept loop down
func (s *Session) safeDispatch(req *protocol.Request) (res *protocol.Response) {
	defer func() {
		if v := recover(); v != nil {
			s.log.Error().Interface("panic", v).Str("path", req.Path).Msg("handler panicked")
			res = protocol.InternalError()
		}
	}()
	return s.dispatch(req)
}

func writeResponse(s *Session) stateFunc {
	if s.writeTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}

	if _, err := s.conn.Write(s.res.Bytes()); err != nil {
		s.log.Warn().Err(err).Msg("write failed")
	}
	return closeSession
}

// terminal state; no keep-alive, every connection closes here
func closeSession(s *Session) stateFunc {
	s.conn.Close()
	return nil
}
