package fetchers

import (
	"bytes"
	"io"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// DataNormalizer cleans up downloaded CSV text before it is parsed or stored
type DataNormalizer struct{}

// NewDataNormalizer creates a new data normalizer instance
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{}
}

// NormalizeCSV strips a byte order mark, converts CRLF and CR line endings
// to LF, drops blank lines and ends the text with a single newline.
// Whitespace-only input yields nil.
func (n *DataNormalizer) NormalizeCSV(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	var out bytes.Buffer
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	if out.Len() == 0 {
		return nil
	}
	return out.Bytes()
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
