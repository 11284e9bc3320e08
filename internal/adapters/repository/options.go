package repository

type rankConfig struct {
	shardCount int
}

// RankOption applies a configuration option to the MemoryRankStore.
type RankOption func(*rankConfig)

// WithShardCount sets the number of score shards.
func WithShardCount(n int) RankOption {
	return func(c *rankConfig) {
		if n > 0 {
			c.shardCount = n
		}
	}
}
