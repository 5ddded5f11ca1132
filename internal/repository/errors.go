package repository

import "errors"

// ErrInviteUnavailable is returned by Redeem when the guarded use-count
// increment matched no rows: the invite is gone or its cap is reached.
var ErrInviteUnavailable = errors.New("invite missing or use cap reached")
