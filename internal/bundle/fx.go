package bundle

import (
	"github.com/smallbiznis/kursus/internal/bundle/repository"
	"github.com/smallbiznis/kursus/internal/bundle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bundle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
