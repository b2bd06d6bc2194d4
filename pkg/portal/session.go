package portal

import (
	"context"
	"net/http"
)

// Session is the transport capability the client needs. Implementations
// attach credentials, resolve path against the portal base URL, and return
// the raw response body. The client never constructs or refreshes a
// Session.
//
// Send returns *types.APIError when the server answered 500 with a body;
// any other failure is returned unchanged.
type Session interface {
	Valid() bool
	Send(ctx context.Context, method, path string, body []byte) ([]byte, error)
}

// Portal REST endpoints, relative to the base URL.
const (
	PathQuery    = "/api/V3/Projection/GetProjectionByCriteria"
	PathTemplate = "/api/V3/Projection/CreateProjectionByTemplate"
	PathCommit   = "/api/V3/Projection/Commit"
	PathEnumList = "/api/V3/Enum/GetList"
)

const (
	methodGet  = http.MethodGet
	methodPost = http.MethodPost
)
