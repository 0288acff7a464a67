package fits

import (
	"fmt"
	"io"
)

// BlockSize is the FITS record length: every header and data section is
// padded to a multiple of 2880 bytes.
const BlockSize = 2880

// cardsPerBlock is the number of 80-byte keyword cards in one header block.
const cardsPerBlock = BlockSize / cardLen

// blockReader reads an underlying stream one 2880-byte FITS block at a
// time. All multi-byte payload values in FITS are big-endian; decoding of
// those happens at the image/table layer on whole buffers.
type blockReader struct {
	r   io.Reader
	eof bool
}

func newBlockReader(r io.Reader) *blockReader {
	return &blockReader{r: r}
}

// nextBlock reads exactly one block. A clean EOF on the block boundary
// returns io.EOF; a partial block is ErrTruncated.
func (b *blockReader) nextBlock() ([]byte, error) {
	if b.eof {
		return nil, io.EOF
	}
	buf := make([]byte, BlockSize)
	n, err := io.ReadFull(b.r, buf)
	switch {
	case err == io.EOF:
		b.eof = true
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		b.eof = true
		return nil, fmt.Errorf("%w: got %d of %d block bytes", ErrTruncated, n, BlockSize)
	case err != nil:
		return nil, fmt.Errorf("read block: %w", err)
	}
	return buf, nil
}

// readData reads a data section of nbytes, consuming whole blocks so the
// reader stays aligned for the next header.
func (b *blockReader) readData(nbytes int) ([]byte, error) {
	nblocks := (nbytes + BlockSize - 1) / BlockSize
	buf := make([]byte, 0, nblocks*BlockSize)
	for i := 0; i < nblocks; i++ {
		blk, err := b.nextBlock()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: data section ends after %d of %d bytes", ErrTruncated, len(buf), nbytes)
		}
		if err != nil {
			return nil, err
		}
		buf = append(buf, blk...)
	}
	return buf[:nbytes], nil
}
