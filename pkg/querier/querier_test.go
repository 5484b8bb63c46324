package querier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/darkclainer/leogo/pkg/lang"
	"github.com/darkclainer/leogo/pkg/parser"
)

func newTestRemote(
	t *testing.T,
	pathFn map[string]http.HandlerFunc,
	timeout time.Duration,
) (
	*Remote,
	func(),
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fn, ok := pathFn[r.URL.Path]
		if !ok {
			t.Errorf("handler for path '%s' not found", r.URL.Path)
			http.Error(w, "no handler", http.StatusInternalServerError)
			return
		}
		fn(w, r)
	})
	server := httptest.NewServer(mux)
	client := server.Client()
	client.Timeout = timeout
	querier := NewRemote(client, &JSONParser{}, &Config{
		Host:     server.Listener.Addr().String(),
		Protocol: "http",
	})
	return querier, func() {
		server.Close()
		_ = querier.Close(context.TODO())
	}
}

func sectionsHandler(t *testing.T, sections []*parser.Section) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := json.NewEncoder(w).Encode(sections)
		assert.NoError(t, err)
	}
}

func TestRemoteTranslate(t *testing.T) {
	english, _ := lang.Resolve("en")
	spanish, _ := lang.Resolve("es")
	testSections := []*parser.Section{
		{
			Name: "subst",
			Rows: []parser.Row{
				{Source: "the house", Target: "das Haus"},
			},
		},
	}
	testCases := map[string]struct {
		query    string
		src      lang.Language
		sections []*parser.Section
		pathFn   map[string]http.HandlerFunc
		err      error
	}{
		"return sections": {
			query:    "Haus",
			src:      english,
			sections: testSections,
			pathFn: map[string]http.HandlerFunc{
				"/englisch-deutsch/Haus": nil, // filled below
			},
		},
		"language selects path segment": {
			query:    "casa",
			src:      spanish,
			sections: testSections,
			pathFn: map[string]http.HandlerFunc{
				"/spanisch-deutsch/casa": nil,
			},
		},
		"query is path escaped": {
			query:    "give up",
			src:      english,
			sections: testSections,
			pathFn: map[string]http.HandlerFunc{
				"/englisch-deutsch/give up": nil,
			},
		},
		"not found": {
			query: "blorb",
			src:   english,
			pathFn: map[string]http.HandlerFunc{
				"/englisch-deutsch/blorb": func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				},
			},
			err: ErrNotFound,
		},
		"server error": {
			query: "Haus",
			src:   english,
			pathFn: map[string]http.HandlerFunc{
				"/englisch-deutsch/Haus": func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusBadGateway)
				},
			},
			err: &HTTPError{},
		},
		"malformed body": {
			query: "Haus",
			src:   english,
			pathFn: map[string]http.HandlerFunc{
				"/englisch-deutsch/Haus": func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte("{,}")) // json error decoding
				},
			},
			err: errors.New("error"),
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			for path, fn := range tc.pathFn {
				if fn == nil {
					tc.pathFn[path] = sectionsHandler(t, tc.sections)
				}
			}
			querier, clean := newTestRemote(t, tc.pathFn, 0)
			defer clean()

			sections, err := querier.Translate(context.TODO(), tc.query, tc.src)
			switch expected := tc.err.(type) {
			case nil:
				assert.NoError(t, err)
				assert.Equal(t, tc.sections, sections)
			case *HTTPError:
				var httpErr *HTTPError
				if assert.True(t, errors.As(err, &httpErr)) {
					assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
				}
			default:
				if expected == ErrNotFound {
					assert.True(t, errors.Is(err, ErrNotFound))
					return
				}
				assert.Error(t, err)
			}
		})
	}
}

func TestRemoteTranslateTimeout(t *testing.T) {
	english, _ := lang.Resolve("en")
	pathFn := map[string]http.HandlerFunc{
		"/englisch-deutsch/slow": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		},
	}
	querier, clean := newTestRemote(t, pathFn, 20*time.Millisecond)
	defer clean()

	_, err := querier.Translate(context.TODO(), "slow", english)
	assert.True(t, errors.Is(err, ErrTimeout), "expected ErrTimeout, got: %v", err)
}

func TestRemoteResultURL(t *testing.T) {
	spanish, _ := lang.Resolve("es")
	querier := NewRemote(nil, nil, &Config{})
	defer querier.Close(context.TODO())

	assert.Equal(t,
		"http://pda.leo.org/spanisch-deutsch/Haus",
		querier.ResultURL(spanish, "Haus"),
	)
	assert.Equal(t,
		"http://pda.leo.org/englisch-deutsch/give%20up",
		querier.ResultURL(lang.Default(), "give up"),
	)
}
