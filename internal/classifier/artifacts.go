package classifier

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadArtifacts reads the fitted model and transformer. Files ending in .gz
// are gunzipped first. Any failure is fatal for the caller; nothing is
// partially loaded.
func LoadArtifacts(modelPath, transformerPath string) (*LogisticRegression, *TFIDF, error) {
	var m LogisticRegression
	if err := decodeFile(modelPath, &m); err != nil {
		return nil, nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}
	if err := m.validate(); err != nil {
		return nil, nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}

	var t TFIDF
	if err := decodeFile(transformerPath, &t); err != nil {
		return nil, nil, fmt.Errorf("load transformer %s: %w", transformerPath, err)
	}
	if err := t.validate(); err != nil {
		return nil, nil, fmt.Errorf("load transformer %s: %w", transformerPath, err)
	}
	return &m, &t, nil
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		r = gz
	}
	return json.NewDecoder(r).Decode(v)
}
