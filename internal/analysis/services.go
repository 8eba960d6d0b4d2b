package analysis

import (
	"github.com/zhulik/pal"

	"xtrack/internal/graph"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide(&graph.Builder{}),
		pal.Provide(&NetworkMetricsModule{}),
		pal.Provide(&InfluenceModule{}),
		pal.Provide(&NetworkExportModule{}),
		pal.Provide(&Orchestrator{}),
	)
}
