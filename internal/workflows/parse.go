package workflows

import (
	"io"
	"os"
)

// LoadJSON reads and unmarshals a workflow document from a JSON file.
//
// LoadJSON combines file reading with parsing - it returns an error
// if the file cannot be read or if the content is not a JSON object.
func LoadJSON(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalDocument(data)
}

// LoadJSONReader unmarshals a workflow document from an io.Reader.
//
// LoadJSONReader is useful for reading documents from stdin or other
// streaming sources.
func LoadJSONReader(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalDocument(data)
}
