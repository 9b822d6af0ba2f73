package types

// CaseResultStatus is the due status of a case result
type CaseResultStatus string

const (
	CaseResultStatusBlocked    CaseResultStatus = "BLOCKED"
	CaseResultStatusDidNotRun  CaseResultStatus = "DIDNOTRUN"
	CaseResultStatusFailed     CaseResultStatus = "FAILED"
	CaseResultStatusInProgress CaseResultStatus = "INPROGRESS"
	CaseResultStatusPassed     CaseResultStatus = "PASSED"
	CaseResultStatusTestFix    CaseResultStatus = "TESTFIX"
	CaseResultStatusUntested   CaseResultStatus = "UNTESTED"
)

// AllCaseResultStatuses returns all valid case result statuses
func AllCaseResultStatuses() []CaseResultStatus {
	return []CaseResultStatus{
		CaseResultStatusBlocked,
		CaseResultStatusDidNotRun,
		CaseResultStatusFailed,
		CaseResultStatusInProgress,
		CaseResultStatusPassed,
		CaseResultStatusTestFix,
		CaseResultStatusUntested,
	}
}

// IsValid checks if the case result status is valid
func (s CaseResultStatus) IsValid() bool {
	switch s {
	case CaseResultStatusBlocked,
		CaseResultStatusDidNotRun,
		CaseResultStatusFailed,
		CaseResultStatusInProgress,
		CaseResultStatusPassed,
		CaseResultStatusTestFix,
		CaseResultStatusUntested:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case result status
func (s CaseResultStatus) String() string {
	return string(s)
}

// TaskStatus is the due status of a testflow task
type TaskStatus string

const (
	TaskStatusAbandoned  TaskStatus = "ABANDONED"
	TaskStatusComplete   TaskStatus = "COMPLETE"
	TaskStatusInAnalysis TaskStatus = "INANALYSIS"
	TaskStatusInProgress TaskStatus = "INPROGRESS"
	TaskStatusOpen       TaskStatus = "OPEN"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusAbandoned,
		TaskStatusComplete,
		TaskStatusInAnalysis,
		TaskStatusInProgress,
		TaskStatusOpen,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusAbandoned,
		TaskStatusComplete,
		TaskStatusInAnalysis,
		TaskStatusInProgress,
		TaskStatusOpen:
		return true
	default:
		return false
	}
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}
