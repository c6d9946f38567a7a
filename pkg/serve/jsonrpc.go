package serve

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSON-RPC 2.0 specification types
// See: https://www.jsonrpc.org/specification

// JSONRPCRequest represents a JSON-RPC 2.0 request object
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response object
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object
type JSONRPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Standard JSON-RPC 2.0 error codes
const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Invalid params: Invalid method parameter(s)
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603
)

// Standard error messages
const (
	ErrMsgParseError     = "Parse error"
	ErrMsgInvalidRequest = "Invalid Request"
	ErrMsgMethodNotFound = "Method not found"
	ErrMsgInvalidParams  = "Invalid params"
	ErrMsgInternalError  = "Internal error"
)

// NewJSONRPCError creates a new JSON-RPC error with the given code and message
func NewJSONRPCError(code int, message string) *JSONRPCError {
	return &JSONRPCError{
		Code:    code,
		Message: message,
	}
}

// MethodHandler is a function that handles a JSON-RPC method call
type MethodHandler func(ctx context.Context, params json.RawMessage) (interface{}, *JSONRPCError)

// MethodRegistry holds registered JSON-RPC methods
type MethodRegistry struct {
	methods map[string]MethodHandler
}

// NewMethodRegistry creates a new method registry
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{
		methods: make(map[string]MethodHandler),
	}
}

// RegisterMethod registers a new method handler
func (r *MethodRegistry) RegisterMethod(name string, handler MethodHandler) {
	r.methods[name] = handler
}

// Dispatch calls the appropriate method handler based on the method name
func (r *MethodRegistry) Dispatch(ctx context.Context, method string, params json.RawMessage) (interface{}, *JSONRPCError) {
	handler, ok := r.methods[method]
	if !ok {
		return nil, NewJSONRPCError(ErrCodeMethodNotFound, ErrMsgMethodNotFound)
	}

	result, err := handler(ctx, params)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateJSONRPCRequest validates a JSON-RPC request envelope
func ValidateJSONRPCRequest(req *JSONRPCRequest) *JSONRPCError {
	if req.JSONRPC != "2.0" {
		return NewJSONRPCError(ErrCodeInvalidRequest, "jsonrpc version must be '2.0'")
	}

	if req.Method == "" {
		return NewJSONRPCError(ErrCodeInvalidRequest, "method is required")
	}

	// ID can be any JSON value (string, number, null) or omitted for
	// notifications. Params can be omitted or be a structured value;
	// their shape is method-specific.

	return nil
}

// ParseJSONRPCRequest parses a JSON-RPC request from a byte slice
func ParseJSONRPCRequest(data []byte) (*JSONRPCRequest, *JSONRPCError) {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, NewJSONRPCError(ErrCodeParseError, ErrMsgParseError)
	}

	if validationErr := ValidateJSONRPCRequest(&req); validationErr != nil {
		return nil, validationErr
	}

	return &req, nil
}

// NewJSONRPCResponse builds a success or error response for the given id.
func NewJSONRPCResponse(id interface{}, result interface{}, rpcErr *JSONRPCError) JSONRPCResponse {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
	}

	if rpcErr != nil {
		resp.Error = rpcErr
		return resp
	}

	rawResult, err := json.Marshal(result)
	if err != nil {
		resp.Error = NewJSONRPCError(ErrCodeInternalError, fmt.Sprintf("%s: %v", ErrMsgInternalError, err))
		return resp
	}
	resp.Result = json.RawMessage(rawResult)
	return resp
}
