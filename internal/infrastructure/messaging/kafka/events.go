// Package kafka carries two topics for the asynchronous compile worker
// (SPEC_FULL.md E.2 domain stack): compile.request (jobs to run) and
// compile.events (request lifecycle notifications a caller can subscribe
// to for progress reporting).
package kafka

import "encoding/json"

// CompileRequest is the payload of a compile.request message.
type CompileRequest struct {
	RunID              string   `json:"run_id"`
	InputPath          string   `json:"input_path"`
	OutputPath         string   `json:"output_path"`
	ComponentThreshold int      `json:"component_threshold"`
	UpstreamNames      []string `json:"upstream_names,omitempty"`
	DownstreamNames    []string `json:"downstream_names,omitempty"`
	PreferNamesAsID    bool     `json:"prefer_names_as_id"`
}

// StageEvent is the payload of a compile.events message. The worker
// emits one when it picks up a request (stage "dispatched", state
// "started") and one when the request ends (stage "compiled", state
// "completed" or "failed"); individual pipeline stages emit none.
type StageEvent struct {
	RunID string `json:"run_id"`
	Stage string `json:"stage"`
	State string `json:"state"` // "started" | "completed" | "failed"
	Error string `json:"error,omitempty"`
}

func (e StageEvent) marshal() ([]byte, error) { return json.Marshal(e) }
