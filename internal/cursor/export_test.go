package cursor

import "github.com/vmihailenco/msgpack/v5"

func encodeForTest(version int, c int64) ([]byte, error) {
	return msgpack.Marshal(record{Version: version, Cursor: c})
}
