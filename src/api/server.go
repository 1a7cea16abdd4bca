package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// route is the type-erased form of a registered endpoint. The closures
// capture the endpoint's concrete types; everything past registration works
// on raw strings and JSON.
type route struct {
	path   string
	ops    map[Operation]bool
	get    func(raw string) (interface{}, *Error)
	create func(body io.Reader) (interface{}, *Error)
	update func(raw string, body io.Reader) (interface{}, *Error)
	del    func(raw string) *Error
}

// Server mounts typed endpoints under a common base path and dispatches
// requests to them. All registration happens before serving starts; once
// serving, the route table is read-only and dispatch needs no locking.
type Server struct {
	basePath string
	mux      *http.ServeMux
	routes   map[string]*route
	ln       net.Listener
	logger   *logrus.Entry
}

// NewServer creates a server that mounts endpoints under basePath.
func NewServer(basePath string, logger *logrus.Entry) *Server {
	return &Server{
		basePath: strings.TrimSuffix(basePath, "/"),
		mux:      http.NewServeMux(),
		routes:   make(map[string]*route),
		logger:   logger,
	}
}

// Register mounts ep under the server's base path plus pathPrefix. parseID
// converts the raw identifier segment of request paths into the endpoint's
// identifier type. Registering a second endpoint at the same effective path
// is a configuration error, reported here rather than at request time.
func Register[ID, T, In, Out any](s *Server, pathPrefix string, ep Endpoint[ID, T, In, Out], parseID IDParser[ID]) error {
	full := s.basePath + pathPrefix

	if _, ok := s.routes[full]; ok {
		return fmt.Errorf("endpoint already registered at %s", full)
	}

	ops := make(map[Operation]bool)
	for _, op := range ep.Operations() {
		ops[op] = true
	}

	parse := func(raw string) (ID, *Error) {
		id, err := parseID(raw)
		if err != nil {
			var zero ID
			return zero, Argument("invalid identifier %q: %v", raw, err)
		}
		return id, nil
	}

	decode := func(body io.Reader) (In, *Error) {
		var in In
		if err := json.NewDecoder(body).Decode(&in); err != nil {
			return in, Argument("invalid request body: %v", err)
		}
		return in, nil
	}

	rt := &route{
		path: full,
		ops:  ops,
		get: func(raw string) (interface{}, *Error) {
			id, apiErr := parse(raw)
			if apiErr != nil {
				return nil, apiErr
			}
			res, err := ep.Get(id)
			if err != nil {
				return nil, AsError(err)
			}
			return res, nil
		},
		create: func(body io.Reader) (interface{}, *Error) {
			in, apiErr := decode(body)
			if apiErr != nil {
				return nil, apiErr
			}
			out, err := ep.Create(in)
			if err != nil {
				return nil, AsError(err)
			}
			return out, nil
		},
		update: func(raw string, body io.Reader) (interface{}, *Error) {
			id, apiErr := parse(raw)
			if apiErr != nil {
				return nil, apiErr
			}
			in, apiErr := decode(body)
			if apiErr != nil {
				return nil, apiErr
			}
			out, err := ep.Update(id, in)
			if err != nil {
				return nil, AsError(err)
			}
			return out, nil
		},
		del: func(raw string) *Error {
			id, apiErr := parse(raw)
			if apiErr != nil {
				return apiErr
			}
			if err := ep.Delete(id); err != nil {
				return AsError(err)
			}
			return nil
		},
	}

	s.routes[full] = rt
	s.mux.HandleFunc(full, s.makeHandler(rt))
	s.mux.HandleFunc(full+"/", s.makeHandler(rt))

	s.logger.WithFields(logrus.Fields{
		"path": full,
		"ops":  ep.Operations(),
	}).Debug("Registered endpoint")

	return nil
}

func (s *Server) makeHandler(rt *route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op, ok := operationFromMethod(r.Method)
		if !ok {
			s.writeError(w, rt, MethodNotAllowed("method %s not supported", r.Method))
			return
		}

		if !rt.ops[op] {
			s.writeError(w, rt, MethodNotAllowed("%s not supported on %s", op, rt.path))
			return
		}

		raw := strings.Trim(strings.TrimPrefix(r.URL.Path, rt.path), "/")

		var (
			res    interface{}
			apiErr *Error
		)

		switch op {
		case Get:
			res, apiErr = rt.get(raw)
		case Create:
			res, apiErr = rt.create(r.Body)
		case Update:
			res, apiErr = rt.update(raw, r.Body)
		case Delete:
			apiErr = rt.del(raw)
		}

		if apiErr != nil {
			s.writeError(w, rt, apiErr)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}
}

func (s *Server) writeError(w http.ResponseWriter, rt *route, apiErr *Error) {
	if apiErr.Kind == ErrInternal {
		s.logger.WithField("path", rt.path).Error(apiErr.Msg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Kind.StatusCode())
	json.NewEncoder(w).Encode(apiErr)
}

// Start begins accepting connections on addr. It does not block the caller:
// the accept loop runs on its own goroutine and failures, including the
// initial bind, are reported on the returned channel.
func (s *Server) Start(addr string) <-chan error {
	errc := make(chan error, 1)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		errc <- err
		return errc
	}

	s.ln = ln
	s.logger.WithField("bind_address", ln.Addr().String()).Info("Serving HTTP API")

	go func() {
		errc <- http.Serve(ln, s.mux)
	}()

	return errc
}

// Addr returns the address the server is bound to. It is only valid after a
// successful Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Handler exposes the server's route table for in-process use and tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}
