package repo

import (
	perr "combatlog/internal/platform/errors"

	"github.com/bwmarrin/snowflake"
)

// IDs issues discriminators that grow monotonically within one process
type IDs struct {
	node *snowflake.Node
}

// NewIDs builds an id source for node, valid nodes are 0 through 1023
func NewIDs(node int64) (*IDs, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "snowflake node %d", node)
	}
	return &IDs{node: n}, nil
}

// Next returns a fresh discriminator
func (i *IDs) Next() uint64 {
	return uint64(i.node.Generate().Int64())
}
