package runtime

import "time"

var (
	DefaultPingTimeout = 3 * time.Second
)
