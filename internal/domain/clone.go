package domain

// CloneProgressState aggregates transfer and checkout progress for a single
// clone. It lives for the duration of that clone only.
type CloneProgressState struct {
	ReceivedObjects  uint64
	TotalObjects     uint64
	IndexedObjects   uint64
	IndexedDeltas    uint64
	TotalDeltas      uint64
	ReceivedBytes    uint64
	CheckoutCurrent  int
	CheckoutTotal    int
	CheckoutPath     string
	TransferComplete bool
}

// ProgressEvent is either a TransferProgress or a CheckoutProgress.
type ProgressEvent interface {
	progressEvent()
}

type TransferProgress struct {
	ReceivedObjects uint64
	TotalObjects    uint64
	IndexedObjects  uint64
	IndexedDeltas   uint64
	TotalDeltas     uint64
	ReceivedBytes   uint64
}

func (TransferProgress) progressEvent() {}

type CheckoutProgress struct {
	Path    string
	Current int
	Total   int
}

func (CheckoutProgress) progressEvent() {}

// ProgressSink receives clone progress events. Calls are never concurrent.
type ProgressSink interface {
	OnEvent(event ProgressEvent)
}
