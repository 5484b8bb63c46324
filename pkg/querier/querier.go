// Package querier fetches result pages from the dictionary service. One
// query is one GET request; there is no retry policy and no caching, the
// tool is a single shot utility.
package querier

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/darkclainer/leogo/pkg/lang"
	"github.com/darkclainer/leogo/pkg/parser"
)

const (
	defaultHost     = "pda.leo.org"
	defaultProtocol = "http"
	defaultTimeout  = 30 * time.Second

	// pathSuffix is the second half of the language pair path segment,
	// e.g. "spanisch" + pathSuffix for a Spanish-German query
	pathSuffix = "-deutsch"
)

var (
	// ErrNotFound reports that the service knows no translation for the
	// queried term. The service signals this with HTTP 404.
	ErrNotFound = errors.New("term not found")
	// ErrTimeout reports that the request exceeded the client timeout.
	ErrTimeout = errors.New("request timed out")
)

// HTTPError reports a response status other than success or not-found.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected response status: %s", e.Status)
}

type Config struct {
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Timeout specifies maximum wait time for each request
	Timeout time.Duration
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// MaxWorkers specifies how many worker parse html content of page
	// Zero value mean that it will be equal to number of logical CPU
	MaxWorkers int
}

type Remote struct {
	client *http.Client
	config *Config
	pool   *workerpool.WorkerPool
	p      Parser
}

func NewRemote(client *http.Client, p Parser, config *Config) *Remote {
	if config.Host == "" {
		config.Host = defaultHost
	}
	if config.Protocol == "" {
		config.Protocol = defaultProtocol
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxWorkers < 1 { // nolint:gomnd // if number not specified
		config.MaxWorkers = runtime.NumCPU()
	}
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	if p == nil {
		p = &HTMLParser{}
	}
	return &Remote{
		client: client,
		config: config,
		pool:   workerpool.New(config.MaxWorkers),
		p:      p,
	}
}

// Translate fetches the result page for query in the src-German pair and
// returns its sections.
func (q *Remote) Translate(ctx context.Context, query string, src lang.Language) ([]*parser.Section, error) {
	response, err := q.get(ctx, q.newResultURL(src, query))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	var sections []*parser.Section
	// Use pool here, because it's heavy cpu bound task
	q.pool.SubmitWait(func() {
		sections, err = q.p.ParseResult(response.Body, src.Code)
	})
	if err != nil {
		return nil, fmt.Errorf("can not parse result page: %w", err)
	}
	return sections, nil
}

func (q *Remote) get(ctx context.Context, urlGet string) (*http.Response, error) {
	request, err := q.newRequest(ctx, urlGet)
	if err != nil {
		return nil, fmt.Errorf("can not assemble request: %w", err)
	}
	response, err := q.client.Do(request)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("get %s: %w", urlGet, ErrTimeout)
		}
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	switch {
	case response.StatusCode == http.StatusNotFound:
		response.Body.Close()
		return nil, ErrNotFound
	case response.StatusCode != http.StatusOK:
		err := &HTTPError{
			StatusCode: response.StatusCode,
			Status:     response.Status,
		}
		response.Body.Close()
		return nil, err
	}
	return response, nil
}

// ResultURL reports the URL Translate would fetch.
func (q *Remote) ResultURL(src lang.Language, query string) string {
	return q.newResultURL(src, query)
}

func (q *Remote) newResultURL(src lang.Language, query string) string {
	resultURL := url.URL{
		Scheme: q.config.Protocol,
		Host:   q.config.Host,
		Path:   "/" + src.Segment + pathSuffix + "/" + query,
	}
	return resultURL.String()
}

func (q *Remote) newRequest(ctx context.Context, urlRequest string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", urlRequest, nil)
	if err != nil {
		return nil, fmt.Errorf("can not form request: %w", err)
	}
	for key, value := range q.config.ExtraHeader {
		req.Header.Add(key, value)
	}
	return req, nil
}

func (q *Remote) Close(ctx context.Context) error {
	q.client.CloseIdleConnections()
	q.pool.StopWait()
	return nil
}

// isTimeout recognizes client level timeouts, which net/http surfaces
// either as a wrapped net.Error with Timeout set or as a deadline error.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
