package persistence

import (
	"github.com/zhulik/pal"

	"xtrack/internal/core"
	"xtrack/internal/persistence/analyses"
	"xtrack/internal/persistence/interactions"
	"xtrack/internal/persistence/results"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.DB](&DB{}),
		pal.Provide[core.AnalysisRepository](&analyses.Repository{}),
		pal.Provide[core.ResultsRepository](&results.Repository{}),
		pal.Provide[core.InteractionStore](&interactions.Repository{}),
	)
}
