package services

import (
	"errors"

	"extend-xmlrpc/xmlrpc"
)

var (
	ErrInsufficientArgs = errors.New("insufficient arguments passed to this XML-RPC method")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidFilter    = errors.New("invalid query filter")
	ErrBadLogin         = errors.New("incorrect username or password")
	ErrNoPosts          = errors.New("no posts matched the query")
	ErrQueryFailed      = errors.New("post query failed")
)

// Fault codes sent by getPosts.
const (
	FaultCodeBadRequest  = 400
	FaultCodeForbidden   = 403
	FaultCodeNoPosts     = 500
	FaultCodeInternal    = 500
	FaultCodeQueryFailed = 503
)

// NoPostsMessage is kept verbatim for existing syndication clients.
const NoPostsMessage = "Either there are no posts, or something went wrong."

// ToFault maps a getPosts error onto the fault sent to the client.
func ToFault(err error) *xmlrpc.Fault {
	var fault *xmlrpc.Fault
	switch {
	case errors.As(err, &fault):
		return fault
	case errors.Is(err, ErrInsufficientArgs):
		return xmlrpc.NewFault(FaultCodeBadRequest, "Insufficient arguments passed to this XML-RPC method.")
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrInvalidFilter):
		return xmlrpc.NewFault(FaultCodeBadRequest, "%s", err.Error())
	case errors.Is(err, ErrBadLogin):
		return xmlrpc.NewFault(FaultCodeForbidden, "Incorrect username or password.")
	case errors.Is(err, ErrNoPosts):
		return xmlrpc.NewFault(FaultCodeNoPosts, NoPostsMessage)
	case errors.Is(err, ErrQueryFailed):
		return xmlrpc.NewFault(FaultCodeQueryFailed, "Post query failed.")
	default:
		return xmlrpc.NewFault(FaultCodeInternal, "Internal server error.")
	}
}
