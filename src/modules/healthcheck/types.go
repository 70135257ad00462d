package healthcheck

import "sentrywatch/src/modules/monitor"

// Monitor is the runtime view of a monitor used throughout the supervisor
// and its tick handlers; it is the same struct as monitor.Model.
type Monitor = monitor.Model
