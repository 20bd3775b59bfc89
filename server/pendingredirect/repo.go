package pendingredirect

import "errors"

var ErrNotFound = errors.New("pending redirect not found")

// Repo stashes the mobile redirect target for one login attempt, keyed
// by a flow ID held in the browser's cookie. Consume is single-use: the
// target is removed the moment it is read, so a stale stash can never
// re-trigger the mobile redirect or leak a token to an old destination.
type Repo interface {
	Put(flowID, target string) error
	Consume(flowID string) (string, error)
}
