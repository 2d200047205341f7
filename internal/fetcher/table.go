package fetcher

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/sells-group/indicator-cli/internal/frame"
)

// Encoding selects the character encoding of a delimited-text source.
type Encoding int

const (
	// EncodingUTF8 reads the input as-is.
	EncodingUTF8 Encoding = iota
	// EncodingLatin1 decodes ISO 8859-1 byte sequences. The HDR composite
	// index files ship with Latin-1 country names and break a strict UTF-8
	// read.
	EncodingLatin1
)

// TableOptions configures the delimited-text table reader.
type TableOptions struct {
	Delimiter rune // default ','
	Encoding  Encoding
	Comment   rune // comment character (0 = none)
}

// ReadTable reads a delimited-text table into a frame. The first row is the
// header; data rows may be shorter or longer than the header.
func ReadTable(r io.Reader, opts TableOptions) (*frame.Frame, error) {
	if opts.Encoding == EncodingLatin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.FieldsPerRecord = -1 // allow variable fields

	f := &frame.Frame{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "table: read row")
		}
		if first {
			first = false
			f.Columns = record
			continue
		}
		f.Rows = append(f.Rows, record)
	}

	if first {
		return nil, eris.New("table: empty input, no header row")
	}

	return f, nil
}
