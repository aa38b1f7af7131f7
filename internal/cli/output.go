package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	formulaic "github.com/formulaic-app/formulaic-go"
)

const (
	jsonOutput = "json"
	yamlOutput = "yaml"
)

func validOutput(format string) error {
	switch format {
	case "", jsonOutput, yamlOutput:
		return nil
	default:
		return fmt.Errorf("unrecognised output format: %s", format)
	}
}

// print writes v to w in the selected output format.
func (a *CLI) print(w io.Writer, v any) error {
	if a.output == yamlOutput {
		return printYAML(w, v)
	}
	return printJSON(w, v)
}

// printYAML converts v via its JSON encoding so that numbers and key order
// match the JSON output.
func printYAML(w io.Writer, v any) error {
	js, err := json.Marshal(v)
	if err != nil {
		return err
	}
	out, err := yaml.JSONToYAML(js)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// readData decodes a JSON object given inline or, failing that, read from
// path, where "-" denotes stdin. Neither given yields nil.
func readData(inline, path string, stdin io.Reader) (formulaic.Resource, error) {
	var src []byte
	switch {
	case inline != "":
		src = []byte(inline)
	case path == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		src = b
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		src = b
	default:
		return nil, nil
	}

	d := json.NewDecoder(bytes.NewReader(src))
	d.UseNumber()
	var data formulaic.Resource
	if err := d.Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing data: %w", err)
	}
	return data, nil
}
