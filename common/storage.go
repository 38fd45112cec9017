package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetInt returns integer stored by the key or zero if there is no such key.
func GetInt(ctx storage.Context, key any) int {
	data := storage.Get(ctx, key)
	if data == nil {
		return 0
	}
	return data.(int)
}

// PaddedSeq returns decimal representation of n left-padded with zeroes
// to SeqLen characters. Keys built from padded numbers are iterated by
// storage.Find in numeric order.
func PaddedSeq(n int) string {
	s := std.Itoa(n, 10)
	for len(s) < SeqLen {
		s = "0" + s
	}
	return s
}

// SeqLen is the length of the PaddedSeq output.
const SeqLen = 10
