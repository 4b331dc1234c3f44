// Package fetchers turns each external source into a typed partial record.
// Every fetcher reads through a TextFetcher, so tests and fixture replay can
// stand in for the network.
package fetchers

// DataFetcher bundles one fetcher per external source
type DataFetcher struct {
	Forecast  *ForecastFetcher
	Status    *StatusPageFetcher
	LiveMap   *LiveMapFetcher
	Schedule  *ScheduleFetcher
	News      *NewsFetcher
	Avalanche *AvalancheFetcher
}

// NewDataFetcher wires every source fetcher to the same TextFetcher
func NewDataFetcher(fetcher TextFetcher, forecastURL, avalancheURL string) *DataFetcher {
	return &DataFetcher{
		Forecast:  NewForecastFetcher(fetcher, forecastURL),
		Status:    NewStatusPageFetcher(fetcher),
		LiveMap:   NewLiveMapFetcher(fetcher),
		Schedule:  NewScheduleFetcher(fetcher),
		News:      NewNewsFetcher(fetcher),
		Avalanche: NewAvalancheFetcher(fetcher, avalancheURL),
	}
}
