package loader

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockLoader implements the Loader interface for interaction tests.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) GetSourceURL() *url.URL {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*url.URL)
}

func (m *MockLoader) Load(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// NewMockLoaderWithContent returns a mock whose Load always yields content.
func NewMockLoaderWithContent(content string) *MockLoader {
	m := new(MockLoader)
	m.On("Load", mock.Anything).Return(content, nil)
	m.On("GetSourceURL").Return(&url.URL{Scheme: "mock", Host: "loader"}).Maybe()
	return m
}
