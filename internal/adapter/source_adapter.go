// Package adapter is the I/O boundary between the mutate pipeline and the
// outside world: reading source/spec text from files or stdin, writing the
// mutated output, and persisting/reading the seed file and run report.
// None of the core packages (chacharng, specrow, specparse, selector,
// replacer) touch an os.File directly; every read or write funnels through
// here so the pipeline stays a pure function of its inputs.
package adapter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rowmut/rowmut/internal/mutagenerr"
	"github.com/rowmut/rowmut/internal/seedcodec"
)

// SourceAdapter abstracts every filesystem/stdin operation the CLI boundary
// needs, so cmd/mutate.go can be tested against a fake without touching
// disk or stdin.
type SourceAdapter interface {
	// ReadSourceAndSpec resolves the source and mutation-spec text from the
	// given paths, or from stdin (using the delimiter protocol) when both
	// are empty.
	ReadSourceAndSpec(inputPath, specPath string, stdin io.Reader) (source, spec string, err error)

	// WriteOutput writes content to path, or to stdout when path is empty
	// or "-". Writing to an existing file requires force.
	WriteOutput(path, content string, force bool) error

	// ReadSeedFile reads a hex seed from the first line of path.
	ReadSeedFile(path string) ([seedcodec.Size]byte, error)

	// WriteSeedFile writes seed as an uppercase hex line to path.
	WriteSeedFile(path string, seed [seedcodec.Size]byte) error

	// WriteReport marshals a run manifest as YAML to path.
	WriteReport(path string, report Report) error
}

// LocalSourceAdapter is the SourceAdapter backed by the real filesystem and
// standard input.
type LocalSourceAdapter struct{}

// NewLocalSourceAdapter constructs a LocalSourceAdapter.
func NewLocalSourceAdapter() *LocalSourceAdapter {
	return &LocalSourceAdapter{}
}

func (a *LocalSourceAdapter) ReadSourceAndSpec(inputPath, specPath string, stdin io.Reader) (string, string, error) {
	if inputPath == "" && specPath == "" {
		return splitStdinByDelimiter(stdin)
	}

	source, err := a.readPathOrStdin(inputPath, stdin)
	if err != nil {
		return "", "", err
	}

	spec, err := a.readPathOrStdin(specPath, stdin)
	if err != nil {
		return "", "", err
	}

	return source, spec, nil
}

func (a *LocalSourceAdapter) readPathOrStdin(path string, stdin io.Reader) (string, error) {
	if path == "" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", mutagenerr.Wrap(mutagenerr.IO, "failed to read stdin", err)
		}

		return string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", mutagenerr.Wrap(mutagenerr.IO, "failed to read "+mutagenerr.Sanitize(path), err)
	}

	return string(content), nil
}

// splitStdinByDelimiter implements spec.md §6's "stdin sharing": the first
// line read is a delimiter; everything up to its next exact repetition is
// the source; everything after that is the spec.
func splitStdinByDelimiter(stdin io.Reader) (string, string, error) {
	reader := bufio.NewReader(stdin)

	delimiter, _, err := readStdinLine(reader)
	if err != nil {
		return "", "", mutagenerr.Wrap(mutagenerr.IO, "failed to read stdin delimiter line", err)
	}

	var source strings.Builder

	for {
		line, eof, err := readStdinLine(reader)
		if err != nil {
			return "", "", mutagenerr.Wrap(mutagenerr.IO, "failed to read stdin source section", err)
		}

		if line == delimiter {
			break
		}

		if eof {
			return "", "", mutagenerr.New(mutagenerr.IO, "stdin ended before the delimiter line repeated")
		}

		source.WriteString(line)
		source.WriteByte('\n')
	}

	rest, err := io.ReadAll(reader)
	if err != nil {
		return "", "", mutagenerr.Wrap(mutagenerr.IO, "failed to read stdin spec section", err)
	}

	return source.String(), string(rest), nil
}

func readStdinLine(r *bufio.Reader) (line string, eof bool, err error) {
	raw, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(raw, "\r\n"), true, nil
		}

		return "", false, err
	}

	return strings.TrimRight(raw, "\r\n"), false, nil
}

func (a *LocalSourceAdapter) WriteOutput(path, content string, force bool) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(content)
		if err != nil {
			return mutagenerr.Wrap(mutagenerr.IO, "failed to write stdout", err)
		}

		return nil
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return mutagenerr.New(mutagenerr.InvalidArgument,
				"output file "+mutagenerr.Sanitize(path)+" already exists; use --force to overwrite")
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return mutagenerr.Wrap(mutagenerr.IO, "failed to write "+mutagenerr.Sanitize(path), err)
	}

	return nil
}

func (a *LocalSourceAdapter) ReadSeedFile(path string) ([seedcodec.Size]byte, error) {
	return seedcodec.ReadSeedFile(path)
}

func (a *LocalSourceAdapter) WriteSeedFile(path string, seed [seedcodec.Size]byte) error {
	return seedcodec.WriteSeedFile(path, seed)
}
