package controller

import "divtracker/internal/dto"

// StateKind discriminates the variants of each screen state machine.
type StateKind string

const (
	StateIdle    StateKind = "IDLE"
	StateLoading StateKind = "LOADING"
	StateSuccess StateKind = "SUCCESS"
	StateError   StateKind = "ERROR"

	// Operation-only outcomes.
	StateCreated StateKind = "CREATED"
	StateUpdated StateKind = "UPDATED"
	StateDeleted StateKind = "DELETED"
)

// ListState is the watchlist screen state: Idle, Loading, Success(page) or
// Error(message). Page is set only for Success, Err only for Error.
type ListState struct {
	Kind StateKind          `json:"kind"`
	Page *dto.WatchlistPage `json:"page,omitempty"`
	Err  string             `json:"error,omitempty"`
}

// DetailState is the one-shot detail view state.
type DetailState struct {
	Kind StateKind                  `json:"kind"`
	Item *dto.WatchlistItemResponse `json:"item,omitempty"`
	Err  string                     `json:"error,omitempty"`
}

// OperationState is the outcome of the most recent create, update or delete
// command. Consumers must reset it after acting on it, otherwise a stale
// Created/Updated/Deleted outcome re-triggers navigation.
type OperationState struct {
	Kind StateKind                  `json:"kind"`
	Item *dto.WatchlistItemResponse `json:"item,omitempty"`
	Err  string                     `json:"error,omitempty"`
}

// SearchState is the ticker search screen state.
type SearchState struct {
	Kind    StateKind                `json:"kind"`
	Results []dto.TickerSearchResult `json:"results,omitempty"`
	Err     string                   `json:"error,omitempty"`
}

func idleList() ListState           { return ListState{Kind: StateIdle} }
func idleDetail() DetailState       { return DetailState{Kind: StateIdle} }
func idleOperation() OperationState { return OperationState{Kind: StateIdle} }
func idleSearch() SearchState       { return SearchState{Kind: StateIdle} }
