// Package icalfeed fetches and parses iCalendar race schedules published
// by clubs.
package icalfeed

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/openvelo/clubraces/internal/platform/logging"
	"github.com/openvelo/clubraces/internal/platform/resilience"
	"github.com/openvelo/clubraces/internal/usecase"
)

const defaultTimeout = 10 * time.Second

type ClientConfig struct {
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements usecase.RaceFeedProvider over HTTP.
type Client struct {
	http           *fasthttp.Client
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchEvents(ctx context.Context, feedURL string) ([]usecase.ScheduleEvent, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, crerr.New("feed URL is required")
	}
	if !strings.HasPrefix(feedURL, "http://") && !strings.HasPrefix(feedURL, "https://") {
		return nil, crerr.Newf("feed URL %q must use http or https", feedURL)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "ical feed circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Wrap(err, "feed is temporarily unavailable")
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(feedURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/calendar")

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		c.recordFailure()
		return nil, crerr.Wrapf(err, "fetch feed %s", feedURL)
	}

	status := resp.StatusCode()
	if status != fasthttp.StatusOK {
		if status >= fasthttp.StatusInternalServerError {
			c.recordFailure()
		} else {
			c.recordSuccess()
		}
		return nil, crerr.Newf("fetch feed %s: unexpected status %d", feedURL, status)
	}
	c.recordSuccess()

	events, err := ParseCalendar(resp.Body())
	if err != nil {
		return nil, crerr.Wrapf(err, "parse feed %s", feedURL)
	}

	c.logger.InfoContext(ctx, "ical feed fetched", "feed_url", feedURL, "events", len(events))

	return events, nil
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}

// ParseCalendar extracts VEVENT blocks from iCalendar data. Events
// without a start date or summary are skipped.
func ParseCalendar(data []byte) ([]usecase.ScheduleEvent, error) {
	if len(data) == 0 {
		return nil, crerr.New("calendar data is empty")
	}

	lines := unfoldLines(data)

	var events []usecase.ScheduleEvent
	var current usecase.ScheduleEvent
	inEvent := false

	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			current = usecase.ScheduleEvent{}
			inEvent = true
		case line == "END:VEVENT":
			if inEvent && current.Title != "" && !current.Date.IsZero() {
				events = append(events, current)
			}
			inEvent = false
		case inEvent:
			name, params, value, ok := splitContentLine(line)
			if !ok {
				continue
			}
			switch name {
			case "UID":
				current.UID = value
			case "SUMMARY":
				current.Title = unescapeText(value)
			case "LOCATION":
				current.Location = unescapeText(value)
			case "DTSTART":
				when, err := parseICalDate(value, params)
				if err == nil {
					current.Date = when
				}
			}
		}
	}

	return events, nil
}

// unfoldLines joins continuation lines, which start with a space or tab,
// back onto their parent line.
func unfoldLines(data []byte) []string {
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	var out []string
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, buf.String())
			buf.Reset()
		}
	}

	for _, line := range raw {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			_, _ = buf.WriteString(line[1:])
			continue
		}
		flush()
		_, _ = buf.WriteString(line)
	}
	flush()

	return out
}

// splitContentLine breaks "NAME;PARAM=X:value" into its parts.
func splitContentLine(line string) (name string, params map[string]string, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", nil, "", false
	}
	head := line[:idx]
	value = line[idx+1:]

	parts := strings.Split(head, ";")
	name = strings.ToUpper(strings.TrimSpace(parts[0]))
	if name == "" {
		return "", nil, "", false
	}

	if len(parts) > 1 {
		params = make(map[string]string, len(parts)-1)
		for _, part := range parts[1:] {
			kv := strings.SplitN(part, "=", 2)
			if len(kv) != 2 {
				continue
			}
			params[strings.ToUpper(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
		}
	}

	return name, params, value, true
}

func parseICalDate(value string, params map[string]string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if params["VALUE"] == "DATE" || len(value) == 8 {
		return time.ParseInLocation("20060102", value, time.UTC)
	}
	if strings.HasSuffix(value, "Z") {
		return time.Parse("20060102T150405Z", value)
	}
	return time.ParseInLocation("20060102T150405", value, time.UTC)
}

func unescapeText(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))
	escaped := false
	for _, r := range value {
		if escaped {
			switch r {
			case 'n', 'N':
				b.WriteByte('\n')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}

	return b.String()
}
