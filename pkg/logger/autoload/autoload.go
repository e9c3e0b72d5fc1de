// Package autoload initializes the global logger from LOG_* environment
// variables via a blank import.
package autoload

import (
	configx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/config"
	logx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
