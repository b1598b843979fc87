package link

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Op identifies the primitive a message belongs to.
type Op uint8

const (
	OpGather Op = iota + 1
	OpGatherv
	OpAllGather
	OpAllGatherv
	OpNeighborAllToAll
	OpNeighborAllToAllv
)

var opNames = map[Op]string{
	OpGather:            "gather",
	OpGatherv:           "gatherv",
	OpAllGather:         "allgather",
	OpAllGatherv:        "allgatherv",
	OpNeighborAllToAll:  "neighbor-alltoall",
	OpNeighborAllToAllv: "neighbor-alltoallv",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// ParseOp is the inverse of Op.String.
func ParseOp(s string) (Op, error) {
	for o, name := range opNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown op %q", s)
}

// Message is one payload of one round.
type Message struct {
	Op    Op
	Round uint32
	Data  []byte
}

const itemSize = 8

// fixed-size items travel as 8-byte big-endian integers
func encodeItem(v int) []byte {
	b := make([]byte, itemSize)
	binary.BigEndian.PutUint64(b, uint64(int64(v)))
	return b
}

func decodeItem(b []byte) (int, error) {
	if len(b) != itemSize {
		return 0, fmt.Errorf("%w: fixed item of %d bytes", ErrLength, len(b))
	}
	return int(int64(binary.BigEndian.Uint64(b))), nil
}
