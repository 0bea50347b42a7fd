package modules

import (
	"github.com/taskdesk/taskdesk/modules/dispatch"
	"github.com/taskdesk/taskdesk/pkg/application"
)

// BuiltInModules is the default module set the server boots with.
var BuiltInModules = []application.Module{
	dispatch.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	return application.Load(app, externalModules...)
}
