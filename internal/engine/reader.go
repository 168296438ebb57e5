package engine

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// newExportReader positions a csv.Reader on the header row of a World Bank
// export. It drops a leading BOM and skips the metadata preamble line by line.
// Rows may be ragged: the exports end every line with a trailing comma and
// the preamble has fewer fields than the table.
func newExportReader(r io.Reader, skipRows int) (*csv.Reader, error) {
	br := bufio.NewReader(r)

	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		if _, err := br.Discard(len(bom)); err != nil {
			return nil, err
		}
	}

	for i := 0; i < skipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, errors.Errorf("preamble: file ended after %d of %d lines", i, skipRows)
			}
			return nil, errors.Wrap(err, "preamble")
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr, nil
}
