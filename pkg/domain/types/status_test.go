package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

func TestCaseResultStatus_IsValid(t *testing.T) {
	for _, s := range types.AllCaseResultStatuses() {
		t.Run(s.String(), func(t *testing.T) {
			gt.B(t, s.IsValid()).True()
		})
	}
	gt.B(t, types.CaseResultStatus("SKIPPED").IsValid()).False()
	gt.B(t, types.CaseResultStatus("").IsValid()).False()
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, s := range types.AllTaskStatuses() {
		t.Run(s.String(), func(t *testing.T) {
			gt.B(t, s.IsValid()).True()
		})
	}
	gt.B(t, types.TaskStatus("DONE").IsValid()).False()
}
