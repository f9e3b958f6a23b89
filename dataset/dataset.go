// Package dataset provides the file I/O and result-formatting
// collaborators surrounding the k-TSS core (spec §1's "out of scope:
// the command-line front end, dataset file parsing ... and result
// printing"). Nothing here participates in the learning algorithm;
// it only turns a file into example strings and turns learner.Result
// values into text.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/ktestable/learner"
)

// Load reads a newline-delimited example file: one example per line,
// with the file's trailing newline (if any) stripped. Line endings may
// be "\n" or "\r\n": a carriage return directly before a newline (or
// at the very end of the file) is dropped with it. Nothing else is
// transformed — interior whitespace and blank lines, including a blank
// last line, are preserved verbatim as examples.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %q: %w", path, err)
	}
	defer f.Close()
	return ReadAll(f)
}

// ReadAll reads examples from r the same way Load does, for callers
// that already have an open reader (tests, stdin piping).
func ReadAll(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	text = strings.TrimSuffix(text, "\r")
	if text == "" {
		return nil, nil
	}

	var examples []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		examples = append(examples, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning dataset: %w", err)
	}
	// The scanner yields no token for an empty final line.
	if strings.HasSuffix(text, "\n") {
		examples = append(examples, "")
	}
	return examples, nil
}

// clusterView is the JSON wire shape of one learner.Result: the
// descriptor (via ktest.Descriptor's own MarshalJSON) plus the sorted
// member example indices from its provenance tree.
type clusterView struct {
	Members    []int           `json:"members"`
	Descriptor json.RawMessage `json:"descriptor"`
}

// FormatClusters renders results as either "text" (one cluster per
// line: member indices, then descriptor cardinality) or "json" (an
// array of {members, descriptor}), per spec §2's printer component.
func FormatClusters(results []learner.Result, format string) (string, error) {
	switch format {
	case "", "text":
		return formatText(results), nil
	case "json":
		return formatJSON(results)
	default:
		return "", fmt.Errorf("unknown format %q: want \"text\" or \"json\"", format)
	}
}

func formatText(results []learner.Result) string {
	var b strings.Builder
	for i, r := range results {
		members := r.Provenance.Leaves()
		fmt.Fprintf(&b, "cluster %d: members=%v cardinality=%d\n", i, members, r.Descriptor.Len())
	}
	fmt.Fprintf(&b, "%d cluster(s)\n", len(results))
	return b.String()
}

func formatJSON(results []learner.Result) (string, error) {
	views := make([]clusterView, 0, len(results))
	for _, r := range results {
		descJSON, err := json.Marshal(r.Descriptor)
		if err != nil {
			return "", fmt.Errorf("marshaling descriptor: %w", err)
		}
		views = append(views, clusterView{
			Members:    r.Provenance.Leaves(),
			Descriptor: descJSON,
		})
	}
	out, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling clusters: %w", err)
	}
	return string(out) + "\n", nil
}
