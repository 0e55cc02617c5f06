package codec

// copyCodec stores chunks verbatim. It is always available and is the
// pipeline's fallback whenever a real codec fails or does not shrink a
// chunk enough to be worth storing compressed.
type copyCodec struct{}

func (copyCodec) Name() string          { return "copy" }
func (copyCodec) Tag() Algo             { return Copy }
func (copyCodec) Bound(srcLen int) int  { return srcLen }

func (copyCodec) Compress(src, dst []byte, level int) (int, error) {
	n := copy(dst[:cap(dst)], src)
	return n, nil
}

func (copyCodec) Decompress(src, dst []byte) (int, error) {
	n := copy(dst, src)
	return n, nil
}
