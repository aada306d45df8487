package cli

import "pnc-buildconfig/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
