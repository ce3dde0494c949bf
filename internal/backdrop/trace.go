package backdrop

import (
	"net/http"
	"sort"
	"strings"
	"time"
)

// LoginTrace captures what the last login attempt actually did: the URL
// hit, the status, the response headers, and a truncated body preview. It
// exists purely for the diagnostics view and never influences control flow.
type LoginTrace struct {
	ID          string
	URL         string
	Status      int
	Headers     []string
	BodyPreview string
	At          time.Time
}

const bodyPreviewLimit = 512

func buildTrace(id, reqURL string, resp *http.Response, body []byte) *LoginTrace {
	trace := &LoginTrace{
		ID:  id,
		URL: reqURL,
		At:  time.Now(),
	}
	if resp == nil {
		return trace
	}
	trace.Status = resp.StatusCode
	for name, values := range resp.Header {
		for _, v := range values {
			trace.Headers = append(trace.Headers, name+": "+redactHeader(name, v))
		}
	}
	sort.Strings(trace.Headers)
	preview := body
	if len(preview) > bodyPreviewLimit {
		preview = preview[:bodyPreviewLimit]
	}
	trace.BodyPreview = string(preview)
	return trace
}

// redactHeader keeps cookie names visible but hides their values; the trace
// is meant to be read off a screen, possibly over someone's shoulder.
func redactHeader(name, value string) string {
	if !strings.EqualFold(name, "Set-Cookie") {
		return value
	}
	if i := strings.IndexByte(value, '='); i >= 0 {
		return value[:i] + "=<redacted>"
	}
	return value
}
