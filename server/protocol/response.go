// build the transmittable bytes for a Response
package protocol

import "strconv"

// Header is one response header line
type Header struct {
	Key, Val string
}

// Response is the message a handler builds during dispatch. Defaults
// are HTTP/1.1 200 OK. Headers keep insertion order so serialized
// output is reproducible; Set on an existing key overwrites in place.
// StatusMessage is whatever the caller set, there is no code to text
// lookup.
type Response struct {
	Version       string
	StatusCode    int
	StatusMessage string
	Body          []byte

	headers []Header
}

func NewResponse() *Response {
	return &Response{
		Version:       "HTTP/1.1",
		StatusCode:    200,
		StatusMessage: "OK",
	}
}

func (r *Response) SetStatus(code int, message string) {
	r.StatusCode = code
	r.StatusMessage = message
}

func (r *Response) SetHeader(key, val string) {
	for i := range r.headers {
		if r.headers[i].Key == key {
			r.headers[i].Val = val
			return
		}
	}
	r.headers = append(r.headers, Header{key, val})
}

func (r *Response) Header(key string) string {
	for _, h := range r.headers {
		if h.Key == key {
			return h.Val
		}
	}
	return ""
}

func (r *Response) Headers() []Header {
	return r.headers
}

// SetContent sets the body and rewrites Content-Type and
// Content-Length to match it, so after any call Content-Length equals
// the byte length of the current body
func (r *Response) SetContent(body []byte, contentType string) {
	r.Body = body
	r.SetHeader("Content-Type", contentType)
	r.SetHeader("Content-Length", strconv.Itoa(len(body)))
}

// Bytes builds the exact bytes to transmit: status line, headers in
// the order they were set, blank line, raw body. The response is
// trusted as given, Content-Length is not re-checked against the body.
func (r *Response) Bytes() []byte {
	buf := make([]byte, 0, 256+len(r.Body))
	buf = append(buf, r.Version...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(r.StatusCode), 10)
	buf = append(buf, ' ')
	buf = append(buf, r.StatusMessage...)
	buf = append(buf, '\r', '\n')
	for _, h := range r.headers {
		buf = append(buf, h.Key...)
		buf = append(buf, ':', ' ')
		buf = append(buf, h.Val...)
		buf = append(buf, '\r', '\n')
	}
	buf = append(buf, '\r', '\n')
	buf = append(buf, r.Body...)
	return buf
}

// canned responses for synthesized outcomes; fresh instances each time
// since handlers and callers may mutate them

func NotFound() *Response {
	r := NewResponse()
	r.SetStatus(404, "Not Found")
	r.SetContent([]byte("<html><body><h1>404 Not Found</h1></body></html>"), "text/html")
	return r
}

func BadRequest() *Response {
	r := NewResponse()
	r.SetStatus(400, "Bad Request")
	r.SetContent([]byte("<html><body><h1>400 Bad Request</h1></body></html>"), "text/html")
	return r
}

func InternalError() *Response {
	r := NewResponse()
	r.SetStatus(500, "Internal Server Error")
	r.SetContent([]byte("<html><body><h1>500 Internal Server Error</h1></body></html>"), "text/html")
	return r
}
