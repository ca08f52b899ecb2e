package model

// Stage identifies a phase of the provisioning pipeline
type Stage string

const (
	StageChecking      Stage = "checking"
	StageDownloading   Stage = "downloading"
	StageExtracting    Stage = "extracting"
	StageMaterializing Stage = "materializing"
	StageComplete      Stage = "complete"
	StageFailed        Stage = "failed"
)

// PercentUnknown marks progress events whose total size is not known.
// Observers should render these as indeterminate rather than as 0%.
const PercentUnknown = -1

// ProgressEvent is emitted to observers on stage transitions and
// download progress. Events are transient and never persisted.
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Percent int    `json:"percent"` // 0-100, or PercentUnknown
	Message string `json:"message"`
}

// ProgressObserver receives provisioning progress events.
// Observers must not block; slow consumers drop events.
type ProgressObserver interface {
	OnProgress(event ProgressEvent)
}

// ProgressFunc adapts a plain function to ProgressObserver
type ProgressFunc func(event ProgressEvent)

// OnProgress calls f(event)
func (f ProgressFunc) OnProgress(event ProgressEvent) {
	f(event)
}
