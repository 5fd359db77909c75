package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrbibin/Project-Management/internal/application"
	"github.com/jrbibin/Project-Management/internal/domain"
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602

	codeInvalid  = 42200
	codeNotFound = 40400
	codeConflict = 40900
	codeInternal = 50000
)

type Server struct {
	service  *application.ProductionService
	log      *slog.Logger
	listener net.Listener
	path     string
	methods  map[string]handlerFunc

	// ctx is the parent of every call and is cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Start listens on the unix socket at path and serves requests until Close.
// A stale socket file at path is replaced.
func Start(path string, service *application.ProductionService, log *slog.Logger) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rpc socket path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		_ = os.Remove(path)
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{service: service, log: log, listener: ln, path: path, ctx: ctx, cancel: cancel}
	s.methods = s.routes()
	go s.serve()
	return s, nil
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	s.cancel()
	err := s.listener.Close()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	stop := context.AfterFunc(s.ctx, func() { _ = conn.Close() })
	defer stop()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			_ = enc.Encode(response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}, ID: nil})
			return
		}

		resp := s.dispatch(s.ctx, req)
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JSONRPC != "2.0" || strings.TrimSpace(req.Method) == "" {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeInvalidRequest, Message: "invalid request"}, ID: req.ID}
	}

	handler, ok := s.methods[req.Method]
	if !ok {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeMethodNotFound, Message: "method not found"}, ID: req.ID}
	}

	result, err := handler(ctx, req.Params)
	if err != nil {
		return s.errorResponse(req, err)
	}
	return response{JSONRPC: "2.0", Result: result, ID: req.ID}
}

var errInvalidParams = errors.New("invalid params")

func decodeParams(raw json.RawMessage, out any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *Server) errorResponse(req request, err error) response {
	var verr *application.ValidationError
	rpcErr := &rpcError{Message: err.Error()}
	switch {
	case errors.Is(err, errInvalidParams):
		rpcErr.Code = codeInvalidParams
	case errors.As(err, &verr):
		rpcErr.Code = codeInvalid
		rpcErr.Data = verr.Fields
	case errors.Is(err, domain.ErrInvalidReference), errors.Is(err, domain.ErrInvalidArgument):
		rpcErr.Code = codeInvalid
	case errors.Is(err, domain.ErrNotFound):
		rpcErr.Code = codeNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrVersionConflict):
		rpcErr.Code = codeConflict
	case errors.Is(err, domain.ErrDataIntegrity):
		rpcErr.Code = codeInternal
		s.log.Error("rpc data integrity violation", "method", req.Method, "err", err)
	default:
		rpcErr.Code = codeInternal
		rpcErr.Message = "internal error"
		s.log.Error("rpc request failed", "method", req.Method, "err", err)
	}
	return response{JSONRPC: "2.0", Error: rpcErr, ID: req.ID}
}
