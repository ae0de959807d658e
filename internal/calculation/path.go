package calculation

import "github.com/rpgo/savings-simulator/internal/domain"

// SimulatePath compounds one capital trajectory. Each year draws exactly one
// return r from stream and applies capital = capital*(1+r) + contribution.
// params must already be validated.
func SimulatePath(params domain.ParameterSet, stream ReturnStream) domain.Path {
	capital := params.InitialCapital()
	path := make(domain.Path, params.HorizonYears())
	for year := range path {
		r := stream.Draw(params.MeanReturn(), params.StdevReturn())
		capital = capital*(1+r) + params.AnnualContribution()
		path[year] = capital
	}
	return path
}
