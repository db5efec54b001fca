package harrislist

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"soloos/sdatomic"
)

// snapshot table layout:
//   table Snapshot { keys:[long]; }
const (
	snapshotKeysSlot      = 0
	snapshotFieldsNum     = 1
	snapshotKeysVTableOff = flatbuffers.VOffsetT((snapshotKeysSlot + 2) * 2)
	int64Size             = 8
)

// Snapshot encodes Keys() as a flatbuffers table.
func (l *List) Snapshot() []byte {
	keys := l.Keys()

	builder := flatbuffers.NewBuilder(int64Size*len(keys) + 32)
	builder.StartVector(int64Size, len(keys), int64Size)
	for i := len(keys) - 1; i >= 0; i-- {
		builder.PrependInt64(keys[i])
	}
	keysVec := builder.EndVector(len(keys))

	builder.StartObject(snapshotFieldsNum)
	builder.PrependUOffsetTSlot(snapshotKeysSlot, keysVec, 0)
	builder.Finish(builder.EndObject())
	return builder.FinishedBytes()
}

func Restore(data []byte) (*List, error) {
	return RestoreWithOptions(data, sdatomic.Options{})
}

func RestoreWithOptions(data []byte, options sdatomic.Options) (l *List, err error) {
	if len(data) < flatbuffers.SizeUOffsetT {
		return nil, ErrCorruptSnapshot
	}
	// out of range offsets in a damaged buffer surface as index panics
	defer func() {
		if r := recover(); r != nil {
			l, err = nil, ErrCorruptSnapshot
		}
	}()

	tab := flatbuffers.Table{
		Bytes: data,
		Pos:   flatbuffers.GetUOffsetT(data),
	}
	l = NewListWithOptions(options)
	o := flatbuffers.UOffsetT(tab.Offset(snapshotKeysVTableOff))
	if o == 0 {
		return l, nil
	}

	start := tab.Vector(o)
	n := tab.VectorLen(o)
	if n < 0 || int(start)+n*int64Size > len(data) {
		return nil, ErrCorruptSnapshot
	}
	for j := 0; j < n; j++ {
		l.Add(tab.GetInt64(start + flatbuffers.UOffsetT(j*int64Size)))
	}
	return l, nil
}
