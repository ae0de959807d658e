package output

import (
	"fmt"

	"github.com/rpgo/savings-simulator/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a run, built from
// the plan's actual parameters.
func GenerateAssumptions(params domain.ParameterSet) []string {
	return []string{
		fmt.Sprintf("Annual return drawn independently each year from Normal(mean %s, stdev %s)",
			FormatPercentage(params.MeanReturn()), FormatPercentage(params.StdevReturn())),
		fmt.Sprintf("Starting capital of %s", FormatCurrency(params.InitialCapital())),
		fmt.Sprintf("Contribution of %s added at the end of every year, after that year's return",
			FormatCurrency(params.AnnualContribution())),
		fmt.Sprintf("%d trials over %d years", params.NumTrials(), params.HorizonYears()),
		"Percentiles interpolate linearly between closest ranks",
		"Values are nominal; no inflation, fees or taxes are modeled",
	}
}
