// Package mocks provides generated gomock doubles for the port interfaces in
// internal/core.
//
// The mocks are produced by go.uber.org/mock's mockgen via the go:generate
// directives below. Regenerate after interface changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	executor := mocks.NewMockActionExecutor(ctrl)
//	executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil)
package mocks

// Mock for SourceAdapter: Platform, Fetch.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=source_adapter_mock.go github.com/jobhawk/jobhawk/internal/core SourceAdapter

// Mock for ActionExecutor: Execute.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=action_executor_mock.go github.com/jobhawk/jobhawk/internal/core ActionExecutor

// Mock for StateStore: LoadAppliedIDs, SaveAppliedIDs, LoadStats, SaveStats, LoadRetrySet, SaveRetrySet.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=state_store_mock.go github.com/jobhawk/jobhawk/internal/core StateStore

// Mock for HistoryArchive: Upsert, List, Stats.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=history_archive_mock.go github.com/jobhawk/jobhawk/internal/core HistoryArchive
