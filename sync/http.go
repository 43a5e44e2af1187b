package sync

import "time"

// HTTPRequestTimeout is the default timeout for all HTTP requests to external APIs.
const HTTPRequestTimeout = 60 * time.Second

// RequestIDHeader carries the run id on every Enteractive request.
const RequestIDHeader = "X-Request-Id"
