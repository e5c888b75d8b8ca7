package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/cellan/internal/ctxlog"
	"github.com/vk/cellan/internal/fsutil"
	"github.com/vk/cellan/internal/model"
)

// Loader is the HCL implementation of the model.Loader interface.
type Loader struct{}

var _ model.Loader = (*Loader)(nil)

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths, in sorted order, and merges
// their model blocks into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoFiles, strings.Join(paths, ", "))
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	asm := newAssembler(ctx)
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decode(asm, file, hclFile.Body); err != nil {
			return nil, err
		}
	}
	return asm.finish()
}

// LoadBytes parses a single in-memory model file. filename is only used in
// diagnostics and as the components' source.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*model.Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	asm := newAssembler(ctx)
	if err := l.decode(asm, filename, hclFile.Body); err != nil {
		return nil, err
	}
	return asm.finish()
}

func (l *Loader) decode(asm *assembler, file string, body hcl.Body) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}
	return asm.addFile(file, &root)
}
