package iamport

import (
	"go.uber.org/fx"
)

// Module provides a *Client built from the *config.Configuration and
// *logger.Logger the application supplies
var Module = fx.Module("iamport",
	fx.Provide(NewClientFromConfig),
)
