// Package api provides the HTTP API for the application
package api

import (
	"caseflow/internal/platform/config"
	"caseflow/internal/platform/logger"
	phttp "caseflow/internal/platform/net/http"
	pmw "caseflow/internal/platform/net/middleware"
	"caseflow/internal/platform/store"

	"caseflow/internal/modkit"
	"caseflow/internal/modkit/httpkit"
	"caseflow/internal/modkit/module"

	metamod "caseflow/internal/services/api/meta/module"
	orgmod "caseflow/internal/services/api/org/module"
	personsmod "caseflow/internal/services/api/persons/module"
	statsmod "caseflow/internal/services/api/stats/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	mods := []module.Module{
		metamod.New(deps),
		orgmod.New(deps),
		personsmod.New(deps),
		statsmod.New(deps),
	}

	// versioned API with a common middleware stack plus tenancy
	mw := append(httpkit.CommonStack(), pmw.OrgHeader())
	httpkit.MountAPIV1(r, mw, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
