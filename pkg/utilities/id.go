package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewRequestID generates a KSUID string used to tag a single HTTP request
// in log output.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewRecordID generates a snowflake ID using a node ID from the environment
// variable SNOWFLAKE_NODE. Records that are written by this service but never
// generated by the database (admin codes) get their primary key from here.
func NewRecordID() int64 {
	nodeID := int64(1)
	if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			nodeID = n
		}
	}
	return NewRecordIDWithNode(nodeID)
}

// NewRecordIDWithNode generates a snowflake ID using the provided node ID.
func NewRecordIDWithNode(nodeID int64) int64 {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		// node out of range; fall back to the default node
		node, _ = snowflake.NewNode(1)
	}
	return node.Generate().Int64()
}
