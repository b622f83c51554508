package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

type MockCheck struct {
	mock.Mock
}

func NewMockCheck(t *testing.T) *MockCheck {
	m := &MockCheck{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run(ctx context.Context) *CheckResult {
	res, _ := m.Called(ctx).Get(0).(*CheckResult)
	return res
}
