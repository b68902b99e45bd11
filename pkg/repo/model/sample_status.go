package model

// SampleStatus is the lifecycle state of a sample. A sample only ever moves
// forward along StatusOrder; Sent is terminal.
type SampleStatus string

const (
	StatusDraftInfos  SampleStatus = "DraftInfos"
	StatusDraftMatrix SampleStatus = "DraftMatrix"
	StatusDraftItems  SampleStatus = "DraftItems"
	StatusSubmitted   SampleStatus = "Submitted"
	StatusSent        SampleStatus = "Sent"
)

var StatusOrder = []SampleStatus{
	StatusDraftInfos,
	StatusDraftMatrix,
	StatusDraftItems,
	StatusSubmitted,
	StatusSent,
}

var DraftStatusList = []SampleStatus{
	StatusDraftInfos,
	StatusDraftMatrix,
	StatusDraftItems,
}

func (s SampleStatus) Valid() bool {
	return s.rank() >= 0
}

// IsDraft reports whether the sample is still editable and deletable.
func (s SampleStatus) IsDraft() bool {
	for _, d := range DraftStatusList {
		if s == d {
			return true
		}
	}
	return false
}

func (s SampleStatus) IsTerminal() bool {
	return s == StatusSent
}

// Next returns the following status on the forward path, or the status
// itself when terminal.
func (s SampleStatus) Next() SampleStatus {
	r := s.rank()
	if r < 0 || r == len(StatusOrder)-1 {
		return s
	}
	return StatusOrder[r+1]
}

// CanTransition reports whether moving from s to target is allowed: one
// single step forward, no skipping, never backward, never out of Sent.
func (s SampleStatus) CanTransition(target SampleStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return target == s.Next()
}

func (s SampleStatus) rank() int {
	for i, st := range StatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}
