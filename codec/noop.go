package codec

// NoOp is codec id 0 (spec.md §4.7): passthrough, no transform.
type NoOp struct{}

var _ Codec = NoOp{}

func (NoOp) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOp) Decompress(data []byte) ([]byte, error) { return data, nil }
