package attendance

import "errors"

// ErrRejected wraps validation failures reported by the HR API
var ErrRejected = errors.New("attendance rejected by HR API")
