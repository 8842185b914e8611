// parse raw bytes from a single read into a Request struct
// only parser logic, no socket handling
package protocol

import (
	"bytes"
	"strconv"
)

// Request is one parsed HTTP request. It is built once per connection
// and not mutated afterwards. Header keys stay case-sensitive and a
// duplicate header keeps the last value seen. Path carries the query
// string verbatim.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers map[string]string
	Body    []byte
}

// ParseRequest maps the raw bytes of one read to a Request.
//
// The request line needs three whitespace-separated tokens; anything
// shorter is ErrTruncatedRequest. Header lines run up to the first
// empty line, split on the first colon with leading spaces and tabs
// stripped from the value; a line without a colon is dropped, not
// reported. A well-formed Content-Length selects the body; when fewer
// bytes than declared are on hand the body is truncated to what
// arrived. Body aliases raw, which the session owns for the
// connection's lifetime.
func ParseRequest(raw []byte) (*Request, error) {
	line, pos := nextLine(raw, 0)
	fields := bytes.Fields(line)
	if len(fields) < 3 {
		return nil, ErrTruncatedRequest
	}

	req := &Request{
		Method:  string(fields[0]),
		Path:    string(fields[1]),
		Version: string(fields[2]),
		Headers: make(map[string]string),
	}

	for pos < len(raw) {
		line, pos = nextLine(raw, pos)
		if len(line) == 0 {
			break
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			continue
		}
		val := line[colon+1:]
		for len(val) > 0 && (val[0] == ' ' || val[0] == '\t') {
			val = val[1:]
		}
		req.Headers[string(line[:colon])] = string(val)
	}

	if cl, ok := req.Headers["Content-Length"]; ok {
		n, err := strconv.Atoi(cl)
		if err != nil || n < 0 {
			return nil, ErrBadContentLength
		}
		if n > len(raw)-pos {
			n = len(raw) - pos
		}
		req.Body = raw[pos : pos+n]
	}

	return req, nil
}

// nextLine returns the line starting at pos with CRLF stripped, and
// the offset just past it; a buffer ending without a newline counts as
// one final line
func nextLine(raw []byte, pos int) ([]byte, int) {
	nl := bytes.IndexByte(raw[pos:], '\n')
	if nl == -1 {
		return raw[pos:], len(raw)
	}
	line := raw[pos : pos+nl]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, pos + nl + 1
}
