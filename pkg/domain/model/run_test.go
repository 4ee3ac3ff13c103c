package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

func TestResult_Status(t *testing.T) {
	tests := []struct {
		name     string
		result   model.Result
		expected model.Status
	}{
		{name: "success", result: model.ResultSuccess, expected: model.StatusSuccess},
		{name: "failure", result: model.ResultFailure, expected: model.StatusFailure},
		{name: "aborted is cancelled", result: model.ResultAborted, expected: model.StatusCancelled},
		{name: "unstable is failure", result: model.ResultUnstable, expected: model.StatusFailure},
		{name: "not built is unknown", result: model.ResultNotBuilt, expected: model.StatusUnknown},
		{name: "absent is unknown", result: "", expected: model.StatusUnknown},
		{name: "unexpected value is unknown", result: model.Result("success"), expected: model.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.result.Status()).Equal(tt.expected)
		})
	}
}

func TestResult_IsSuccess(t *testing.T) {
	gt.True(t, model.ResultSuccess.IsSuccess())
	gt.False(t, model.ResultUnstable.IsSuccess())
	gt.False(t, model.Result("").IsSuccess())
}

func TestRun_TriggeringUserID(t *testing.T) {
	t.Run("first user cause wins", func(t *testing.T) {
		run := &model.Run{Causes: []model.Cause{{}, {UserID: "alice"}, {UserID: "bob"}}}
		gt.Value(t, run.TriggeringUserID()).Equal("alice")
	})

	t.Run("no user cause", func(t *testing.T) {
		run := &model.Run{Causes: []model.Cause{{}}}
		gt.Value(t, run.TriggeringUserID()).Equal("")
	})
}

func TestFilterConfig_IsConfigured(t *testing.T) {
	var nilConfig *model.FilterConfig
	gt.False(t, nilConfig.IsConfigured())
	gt.False(t, (&model.FilterConfig{BaseURL: "   "}).IsConfigured())
	gt.True(t, (&model.FilterConfig{BaseURL: "https://dx.example.com"}).IsConfigured())
}

func TestFilterConfig_SyncURL(t *testing.T) {
	cfg := &model.FilterConfig{BaseURL: "https://dx.example.com/"}
	gt.Value(t, cfg.SyncURL("/api/pipelineRuns.sync")).Equal("https://dx.example.com/api/pipelineRuns.sync")
}

func TestDeliveryOutcome_String(t *testing.T) {
	gt.Value(t, model.Delivered(201).String()).Equal("delivered (201)")
	gt.Value(t, model.Skipped(model.ReasonNotConfigured).String()).Equal("skipped: not configured")
	gt.Value(t, model.Failed("http 500").String()).Equal("failed: http 500")
}
