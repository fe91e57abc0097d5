// Package testutils provides mock implementations for testing
package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/outbound"
)

// MockModelClient provides a mock implementation of outbound.ModelClient.
// Expectations are set on (ctx, systemPrompt, userPrompt, options) where
// options is the resolved outbound.CallOptions.
type MockModelClient struct {
	mock.Mock
}

var _ outbound.ModelClient = (*MockModelClient)(nil)

// ChatCompletion records the call and returns the configured reply
func (m *MockModelClient) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string, opts ...outbound.CallOption) (ai.Reply, error) {
	resolved := outbound.DefaultCallOptions().Apply(opts...)
	args := m.Called(ctx, systemPrompt, userPrompt, resolved)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ai.Reply), nil
}

// UserPrompt returns the user prompt of the i-th recorded call
func (m *MockModelClient) UserPrompt(i int) string {
	return m.Calls[i].Arguments.String(2)
}

// CallOptions returns the resolved options of the i-th recorded call
func (m *MockModelClient) CallOptions(i int) outbound.CallOptions {
	return m.Calls[i].Arguments.Get(3).(outbound.CallOptions)
}

// MockUnitOfWork provides a mock implementation of outbound.UnitOfWork.
// When Repos is set the work function runs against it and its error is
// returned unless the expectation supplies one.
type MockUnitOfWork struct {
	mock.Mock
	Repos outbound.Repositories
}

var _ outbound.UnitOfWork = (*MockUnitOfWork)(nil)

// Do records the call and optionally runs fn
func (m *MockUnitOfWork) Do(ctx context.Context, fn func(repos outbound.Repositories) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	if m.Repos != nil {
		return fn(m.Repos)
	}
	return nil
}

// MockDraftStore provides a mock implementation of outbound.DraftStore
type MockDraftStore struct {
	mock.Mock
}

var _ outbound.DraftStore = (*MockDraftStore)(nil)

// Save records the call
func (m *MockDraftStore) Save(ctx context.Context, suggestion recipe.RecipeSuggestion) (string, error) {
	args := m.Called(ctx, suggestion)
	return args.String(0), args.Error(1)
}

// Get records the call
func (m *MockDraftStore) Get(ctx context.Context, id string) (*recipe.RecipeSuggestion, error) {
	args := m.Called(ctx, id)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.RecipeSuggestion), nil
}

// Delete records the call
func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
