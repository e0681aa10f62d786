package mock

import "errors"

var errOutOfReplies = errors.New("mock: no more replies")
