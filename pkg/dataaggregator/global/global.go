package global

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/patnametro/pkg/crowd"
	"github.com/travigo/patnametro/pkg/dataaggregator"
	"github.com/travigo/patnametro/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/patnametro/pkg/dataaggregator/source/crowdsource"
	"github.com/travigo/patnametro/pkg/dataaggregator/source/journeyplanner"
	"github.com/travigo/patnametro/pkg/dataaggregator/source/referencedata"
	"github.com/travigo/patnametro/pkg/dataimporter"
)

// Setup registers every data source against the global aggregator. Crowd
// forecasts are only cached when a Redis client is given.
func Setup(dataset *dataimporter.Dataset, generator *crowd.Generator, redisClient *redis.Client) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	dataaggregator.GlobalAggregator.RegisterSource(referencedata.Source{Dataset: dataset})
	dataaggregator.GlobalAggregator.RegisterSource(journeyplanner.Source{Dataset: dataset})

	crowdSource := crowdsource.Source{
		Dataset:   dataset,
		Generator: generator,
	}
	if redisClient != nil {
		crowdSource.CachedResults = &cachedresults.Cache{}
		crowdSource.CachedResults.Setup(redisClient, time.Hour)
	}
	dataaggregator.GlobalAggregator.RegisterSource(crowdSource)
}
