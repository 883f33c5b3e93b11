package testutil

import (
	"context"

	"github.com/flexprice/iamport-go/internal/config"
	"github.com/flexprice/iamport-go/internal/logger"
	"github.com/flexprice/iamport-go/internal/types"
	"github.com/flexprice/iamport-go/internal/validator"
	"github.com/stretchr/testify/suite"
)

// GatewayTestSuite provides a fake gateway and test configuration to
// suites that drive the client end to end
type GatewayTestSuite struct {
	suite.Suite
	ctx     context.Context
	gateway *FakeGateway
	logger  *logger.Logger
	config  *config.Configuration
}

// SetupSuite is called once before running the tests in the suite
func (s *GatewayTestSuite) SetupSuite() {
	validator.NewValidator()

	s.logger = logger.NewNopLogger()
	s.gateway = NewFakeGateway()
}

// TearDownSuite stops the fake gateway
func (s *GatewayTestSuite) TearDownSuite() {
	s.gateway.Close()
}

// SetupTest is called before each test
func (s *GatewayTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.gateway.Clear()

	cfg := config.GetDefaultConfig()
	cfg.Iamport.APIKey = "test_imp_key"
	cfg.Iamport.APISecret = "test_imp_secret"
	cfg.Iamport.BaseURL = s.gateway.URL()
	cfg.HTTP.RetryMax = 0
	cfg.Logging.Level = types.LogLevelDebug
	s.config = cfg
}

func (s *GatewayTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *GatewayTestSuite) GetGateway() *FakeGateway {
	return s.gateway
}

func (s *GatewayTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns configuration pointing at the fake gateway
func (s *GatewayTestSuite) GetConfig() *config.Configuration {
	return s.config
}
