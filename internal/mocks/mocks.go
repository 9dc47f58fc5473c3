// Package mocks provides testify-backed doubles for the domain contracts.
package mocks

import (
	"context"
	"testing"

	"crmdash/internal/domain/entity"
	"crmdash/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockCredentialRepository is a mock for repository.CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

// NewMockCredentialRepository creates a mock wired to the test lifecycle.
func NewMockCredentialRepository(t *testing.T) *MockCredentialRepository {
	m := &MockCredentialRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCredentialRepository) Save(ctx context.Context, cred *entity.Credential) error {
	args := m.Called(ctx, cred)

	return args.Error(0)
}

func (m *MockCredentialRepository) Load(ctx context.Context) (*entity.Credential, error) {
	args := m.Called(ctx)
	if cred, ok := args.Get(0).(*entity.Credential); ok {
		return cred, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCredentialRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockCRMClient is a mock for service.CRMClient.
type MockCRMClient struct {
	mock.Mock
}

// NewMockCRMClient creates a mock wired to the test lifecycle.
func NewMockCRMClient(t *testing.T) *MockCRMClient {
	m := &MockCRMClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCRMClient) SetAuth(instanceURL, accessToken string) {
	m.Called(instanceURL, accessToken)
}

func (m *MockCRMClient) ListAccounts(ctx context.Context, limit int) (*entity.QueryResult, error) {
	args := m.Called(ctx, limit)
	if result, ok := args.Get(0).(*entity.QueryResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCRMClient) ListOpportunities(ctx context.Context, limit int) (*entity.QueryResult, error) {
	args := m.Called(ctx, limit)
	if result, ok := args.Get(0).(*entity.QueryResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCRMClient) StageDistribution(ctx context.Context) (*entity.QueryResult, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).(*entity.QueryResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCRMClient) IndustryDistribution(ctx context.Context) (*entity.QueryResult, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).(*entity.QueryResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCRMClient) MonthlyOpportunityVolume(ctx context.Context) (*entity.QueryResult, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).(*entity.QueryResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCRMClient) GetRecord(ctx context.Context, objectType entity.ObjectType, id string, fields []string) (entity.Record, error) {
	args := m.Called(ctx, objectType, id, fields)
	if record, ok := args.Get(0).(entity.Record); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCRMClient) CreateRecord(ctx context.Context, objectType entity.ObjectType, data entity.Record) (*entity.SaveResult, error) {
	args := m.Called(ctx, objectType, data)
	if result, ok := args.Get(0).(*entity.SaveResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCRMClient) UpdateRecord(ctx context.Context, objectType entity.ObjectType, id string, data entity.Record) error {
	args := m.Called(ctx, objectType, id, data)

	return args.Error(0)
}

func (m *MockCRMClient) DeleteRecord(ctx context.Context, objectType entity.ObjectType, id string) error {
	args := m.Called(ctx, objectType, id)

	return args.Error(0)
}

// MockSessionUsecase is a mock for usecase.SessionUsecase.
type MockSessionUsecase struct {
	mock.Mock
}

// NewMockSessionUsecase creates a mock wired to the test lifecycle.
func NewMockSessionUsecase(t *testing.T) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionUsecase) Resume(ctx context.Context, fragment string) (*entity.SessionState, error) {
	args := m.Called(ctx, fragment)
	if state, ok := args.Get(0).(*entity.SessionState); ok {
		return state, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionUsecase) Current() *entity.SessionState {
	args := m.Called()

	return args.Get(0).(*entity.SessionState)
}

func (m *MockSessionUsecase) LoginURL() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

func (m *MockSessionUsecase) Logout(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockSessionUsecase) Refresh(ctx context.Context) (*entity.DashboardSnapshot, error) {
	args := m.Called(ctx)
	if snapshot, ok := args.Get(0).(*entity.DashboardSnapshot); ok {
		return snapshot, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionUsecase) MonthlyVolume(ctx context.Context) (*entity.QueryResult, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).(*entity.QueryResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionUsecase) GetRecord(ctx context.Context, objectType entity.ObjectType, id string, fields []string) (entity.Record, error) {
	args := m.Called(ctx, objectType, id, fields)
	if record, ok := args.Get(0).(entity.Record); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionUsecase) Mutate(ctx context.Context, input *usecase.MutateInput) (*usecase.MutateOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.MutateOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}
