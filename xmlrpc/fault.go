package xmlrpc

import "fmt"

// Protocol level fault codes, numbered as in the xmlrpc-epi interop spec.
const (
	FaultParseError     = -32700
	FaultMethodNotFound = -32601
	FaultInternalError  = -32500
)

// Fault is an XML-RPC fault. Method handlers return it as an error to control
// the faultCode and faultString sent to the client.
type Fault struct {
	Code    int    `xmlrpc:"faultCode"`
	Message string `xmlrpc:"faultString"`
}

func NewFault(code int, format string, args ...any) *Fault {
	return &Fault{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("xmlrpc fault %d: %s", f.Code, f.Message)
}
