// Package serve runs the line-delimited JSON-RPC loop that exposes the tool
// registry to an external agent. Requests arrive one per line on the reader,
// responses leave one per line on the writer; everything else (logs included)
// stays off the response stream.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forgebridge/forgebridge/pkg/github"
	"github.com/forgebridge/forgebridge/pkg/log"
	"github.com/forgebridge/forgebridge/pkg/tools"
)

// Options configures a Server.
type Options struct {
	Registry *tools.Registry

	// RateLimit, when set, is polled after each tool call for debug logging.
	RateLimit *github.RateLimitTracker
}

// Server dispatches JSON-RPC requests to the tool registry.
type Server struct {
	registry *tools.Registry
	rate     *github.RateLimitTracker
	methods  *MethodRegistry

	// writeMu serializes response lines on the output stream.
	writeMu sync.Mutex
	enc     *json.Encoder
}

// NewServer creates a server exposing the registry over the tools/list and
// tools/call methods.
func NewServer(opts Options) (*Server, error) {
	if opts.Registry == nil {
		return nil, errors.New("tool registry is required")
	}

	s := &Server{
		registry: opts.Registry,
		rate:     opts.RateLimit,
		methods:  NewMethodRegistry(),
	}
	s.methods.RegisterMethod("tools/list", s.handleToolsList)
	s.methods.RegisterMethod("tools/call", s.handleToolsCall)
	return s, nil
}

// Run reads requests from r until EOF or context cancellation, writing one
// response line per request to w. Notifications (requests without an id) are
// dispatched but produce no response line. Lines are read on a separate
// goroutine so cancellation also interrupts a loop blocked on idle input.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	s.enc = json.NewEncoder(w)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		// File contents embedded in tool arguments can exceed Scanner's
		// default 64 KiB token limit.
		scanner.Buffer(make([]byte, 0, 128*1024), 10*1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read request stream: %w", err)
			}
			return nil
		case raw := <-lines:
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if err := s.handleLine(ctx, []byte(line)); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) error {
	req, rpcErr := ParseJSONRPCRequest(line)
	if rpcErr != nil {
		return s.write(NewJSONRPCResponse(nil, nil, rpcErr))
	}

	logger := log.With("request_id", uuid.NewString(), "method", req.Method)
	logger.Debug("handling request")

	result, rpcErr := s.methods.Dispatch(withLogger(ctx, logger), req.Method, req.Params)
	if rpcErr != nil {
		logger.Warnw("request failed", "code", rpcErr.Code, "error", rpcErr.Message)
	}

	if req.ID == nil {
		return nil
	}
	return s.write(NewJSONRPCResponse(req.ID, result, rpcErr))
}

// loggerKey carries the request-scoped logger through method dispatch.
type loggerKey struct{}

func withLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func loggerFrom(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return log.Get()
}

func (s *Server) write(resp JSONRPCResponse) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// toolDescriptor is the listing shape of one tool.
type toolDescriptor struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	InputSchema tools.InputSchema `json:"inputSchema"`
}

type toolsListResult struct {
	Tools []toolDescriptor `json:"tools"`
}

func (s *Server) handleToolsList(ctx context.Context, params json.RawMessage) (interface{}, *JSONRPCError) {
	list := s.registry.List()
	descriptors := make([]toolDescriptor, 0, len(list))
	for _, t := range list {
		descriptors = append(descriptors, toolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return toolsListResult{Tools: descriptors}, nil
}

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (interface{}, *JSONRPCError) {
	var call toolsCallParams
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, NewJSONRPCError(ErrCodeInvalidParams, fmt.Sprintf("%s: %v", ErrMsgInvalidParams, err))
	}
	if call.Name == "" {
		return nil, NewJSONRPCError(ErrCodeInvalidParams, "tool name is required")
	}

	start := time.Now()
	result, err := s.registry.Dispatch(ctx, call.Name, call.Arguments)
	if err != nil {
		var unknown *tools.UnknownToolError
		var invalid *tools.InvalidArgsError
		switch {
		case errors.As(err, &unknown):
			return nil, NewJSONRPCError(ErrCodeInvalidParams, unknown.Error())
		case errors.As(err, &invalid):
			return nil, NewJSONRPCError(ErrCodeInvalidParams, invalid.Error())
		default:
			return nil, NewJSONRPCError(ErrCodeInternalError, err.Error())
		}
	}

	loggerFrom(ctx).Infow("tool call completed",
		"tool", call.Name,
		"duration", time.Since(start),
		"is_error", result.IsError)
	s.logRateLimit(call.Name)
	return result, nil
}

func (s *Server) logRateLimit(tool string) {
	if s.rate == nil {
		return
	}
	status := s.rate.GetStatus()
	log.Debugf("rate limit after %s: %d/%d remaining", tool, status.Remaining, status.Limit)
}
