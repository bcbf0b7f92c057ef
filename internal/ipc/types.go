package ipc

// StartRequest begins monitoring.
type StartRequest struct{}

// StartResponse indicates whether monitoring was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest halts monitoring without terminating the daemon.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// ShutdownRequest terminates the daemon process.
type ShutdownRequest struct{}

// ShutdownResponse acknowledges a shutdown request.
type ShutdownResponse struct {
	ShuttingDown bool `json:"shutting_down"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon/scheduler status information.
type StatusResponse struct {
	Running     bool   `json:"running"`
	Day         string `json:"day"`
	Captures    int    `json:"captures"`
	IntervalMin int    `json:"interval_min"`
	IntervalMax int    `json:"interval_max"`
	PixelSize   int    `json:"pixel_size"`
	OnTask      int    `json:"on_task"`
	OffTask     int    `json:"off_task"`
	None        int    `json:"none"`
	SaveDir     string `json:"save_dir"`
	LockPath    string `json:"lock_path"`
	SessionID   string `json:"session_id"`
	PID         int    `json:"pid"`
}

// Record mirrors one ledger record for CLI consumption.
type Record struct {
	Filename       string `json:"filename"`
	Classification string `json:"classification"`
	CapturedAt     string `json:"captured_at,omitempty"`
}

// ListRequest fetches the records of one day partition. An empty day means
// the active partition.
type ListRequest struct {
	Day         string `json:"day"`
	PendingOnly bool   `json:"pending_only"`
}

// ListResponse contains a day's records in capture order.
type ListResponse struct {
	Day     string   `json:"day"`
	Records []Record `json:"records"`
	OnTask  int      `json:"on_task"`
	OffTask int      `json:"off_task"`
	None    int      `json:"none"`
}

// ResolveRequest applies a decision to one record.
type ResolveRequest struct {
	Day      string `json:"day"`
	Filename string `json:"filename"`
	Decision string `json:"decision"`
}

// ResolveResponse reports the applied decision.
type ResolveResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// SetDayRequest switches the active day partition.
type SetDayRequest struct {
	Day string `json:"day"`
}

// SetDayResponse acknowledges a day switch.
type SetDayResponse struct {
	Day string `json:"day"`
}

// SetIntervalsRequest reconfigures the capture cadence.
type SetIntervalsRequest struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SetIntervalsResponse acknowledges an interval change.
type SetIntervalsResponse struct{}

// SetPixelSizeRequest reconfigures the pixelation factor.
type SetPixelSizeRequest struct {
	Size int `json:"size"`
}

// SetPixelSizeResponse acknowledges a pixel size change.
type SetPixelSizeResponse struct{}

// TestNotificationRequest sends a test push notification.
type TestNotificationRequest struct{}

// TestNotificationResponse acknowledges the test push.
type TestNotificationResponse struct {
	Sent bool `json:"sent"`
}
