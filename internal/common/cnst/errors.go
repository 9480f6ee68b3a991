package cnst

import "errors"

var (
	// ErrUnsupportedDatabase is returned for an unknown database type in config
	ErrUnsupportedDatabase = errors.New("unsupported database type")
	// ErrUnsupportedSessionStore is returned for an unknown session store type
	ErrUnsupportedSessionStore = errors.New("unsupported session store type")
)
