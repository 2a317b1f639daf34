// Package autoload initializes the global logger from the environment.
// Import for side effects:
//
//	import _ "github.com/tanpawarit/profile-concierge/pkg/logger/autoload"
package autoload

import (
	configx "github.com/tanpawarit/profile-concierge/pkg/config"
	logx "github.com/tanpawarit/profile-concierge/pkg/logger"
)

func init() {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*conf)
}
