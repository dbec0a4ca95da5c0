package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique, roughly time-ordered IDs.
type Generator interface {
	Next() snowflake.ID
}

// SnowflakeGenerator implements Generator with Twitter Snowflake.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

// Next is safe for concurrent use; the node serializes generation.
func (g *SnowflakeGenerator) Next() snowflake.ID {
	return g.node.Generate()
}
