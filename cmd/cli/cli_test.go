package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newscheck/internal/crawler"
	"newscheck/internal/models"
)

const (
	testModel       = "../../internal/classifier/testdata/model.json"
	testTransformer = "../../internal/classifier/testdata/transformer.json"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	base := []string{
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--model", testModel,
		"--transformer", testTransformer,
		"--log-level", "error",
	}
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVerdict(t *testing.T) {
	r := models.Prediction{Label: "real", Classes: [2]string{"fake", "real"}, Probabilities: [2]float64{0.1257, 0.8743}}
	assert.Contains(t, verdict(r), "Prediction: Real (Confidence: 87.43%)")

	fake := models.Prediction{Label: "fake", Classes: [2]string{"fake", "real"}, Probabilities: [2]float64{0.6, 0.4}}
	assert.Contains(t, verdict(fake), "Prediction: Fake (Confidence: 60.00%)")
}

func TestUserError(t *testing.T) {
	err := userError(&crawler.FetchError{URL: "https://x.example", StatusCode: 404})
	assert.Contains(t, err.Error(), "404")
	var fe *crawler.FetchError
	assert.True(t, errors.As(err, &fe))
}

func TestClassifyTextJSON(t *testing.T) {
	out, err := execute(t, "classify", "--text", "The stock market rallied today on strong earnings reports.", "--json")
	require.NoError(t, err)

	var an models.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &an))
	assert.Equal(t, "real", an.Prediction.Label)
	assert.Equal(t, "stock market ralli today strong earn report", an.TokenPreview)
	assert.InDelta(t, 1.0, an.Prediction.Probabilities[0]+an.Prediction.Probabilities[1], 1e-6)
}

func TestBatchFromFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/real":
			fmt.Fprint(w, "<p>"+strings.Repeat("Stock market earnings reports were strong. ", 3)+"</p>")
		case "/thin":
			fmt.Fprint(w, "<p>Short.</p>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	input := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(input, []byte(ts.URL+"/real\n"+ts.URL+"/thin\n"+ts.URL+"/gone\n"), 0o600))

	out, err := execute(t, "batch", "--input", input)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	var recs []batchRecord
	for _, line := range lines {
		var rec batchRecord
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		recs = append(recs, rec)
	}
	assert.Equal(t, "real", recs[0].Label)
	assert.Empty(t, recs[0].Error)
	assert.Equal(t, "insufficient_content", string(recs[1].Kind))
	assert.Equal(t, "fetch", string(recs[2].Kind))
	assert.Contains(t, recs[2].Error, "404")
}

func TestHelpWithoutArtifacts(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	cfgPath = filepath.Join(t.TempDir(), "none.yaml")
	modelPath = filepath.Join(t.TempDir(), "missing.json")
	transformerPath = filepath.Join(t.TempDir(), "missing.json")

	rootCmd.SetArgs([]string{"help", "classify"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "--url")
}
