// Package generate runs topology generators and writes their index files.
package generate

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
	"github.com/Aman-CERP/meshidx/internal/indexfile"
	"github.com/Aman-CERP/meshidx/internal/mesh"
)

// StdoutPath makes Run stream to the configured stdout instead of a file.
const StdoutPath = "-"

// Request describes one generator run.
type Request struct {
	Topology   string
	Dimensions mesh.Dimensions
	// Output is the destination path, or StdoutPath.
	Output string
}

// Result summarizes a completed run.
type Result struct {
	Topology   string
	Dimensions mesh.Dimensions
	Path       string
	Records    int
	Bytes      int64
	Duration   time.Duration
}

// Runner generates and writes index files.
type Runner struct {
	writer *indexfile.Writer
	stdout io.Writer
	logger *slog.Logger
}

// NewRunner creates a Runner. stdout receives output when Request.Output
// is StdoutPath. A nil logger uses slog.Default().
func NewRunner(opts indexfile.Options, stdout io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		writer: indexfile.NewWriter(opts, logger),
		stdout: stdout,
		logger: logger,
	}
}

// Run validates the request, generates the sequence and writes it.
// Nothing is written if validation or generation fails.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	seq, err := r.generate(ctx, req)
	if err != nil {
		return Result{Topology: req.Topology, Dimensions: req.Dimensions, Path: req.Output}, err
	}
	return r.write(ctx, req, seq, start)
}

// RunAll writes every registered topology into dir as <name>.txt.
//
// Every topology validates the dimensions before any file is touched, so a
// topology rejecting them leaves dir unchanged. Writing runs one goroutine
// per topology; the first failure cancels the rest. Results are ordered
// like mesh.Names().
func (r *Runner) RunAll(ctx context.Context, d mesh.Dimensions, dir string) ([]Result, error) {
	start := time.Now()
	names := mesh.Names()
	reqs := make([]Request, len(names))
	for i, name := range names {
		reqs[i] = Request{
			Topology:   name,
			Dimensions: d,
			Output:     filepath.Join(dir, name+".txt"),
		}
	}

	seqs := make([]*mesh.Sequence, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			seq, err := r.generate(gctx, req)
			seqs[i] = seq
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, meshErrors.IOFailure(dir, err)
	}

	results := make([]Result, len(reqs))
	g, gctx = errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := r.write(gctx, req, seqs[i], start)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) generate(ctx context.Context, req Request) (*mesh.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topo, err := mesh.Lookup(req.Topology)
	if err != nil {
		return nil, err
	}
	if req.Output == "" {
		return nil, meshErrors.MissingArgument("output")
	}

	seq, err := topo.Generate(req.Dimensions)
	if err != nil {
		r.logger.Debug("generation rejected",
			slog.String("topology", topo.Name),
			slog.String("dimensions", req.Dimensions.String()),
			slog.Any("error", meshErrors.FormatForLog(err)))
		return nil, err
	}

	r.logger.Debug("generating",
		slog.String("topology", topo.Name),
		slog.String("dimensions", req.Dimensions.String()),
		slog.Int("expected_records", topo.Count(req.Dimensions)),
		slog.String("path", req.Output))
	return seq, nil
}

func (r *Runner) write(ctx context.Context, req Request, seq *mesh.Sequence, start time.Time) (Result, error) {
	res := Result{
		Topology:   req.Topology,
		Dimensions: req.Dimensions,
		Path:       req.Output,
		Records:    seq.Len(),
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	var err error
	if req.Output == StdoutPath {
		res.Bytes, err = indexfile.WriteTo(ctx, r.stdout, seq)
	} else {
		var wr indexfile.Result
		wr, err = r.writer.Write(ctx, req.Output, seq)
		res.Bytes = wr.Bytes
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	r.logger.Info("index file generated",
		slog.String("topology", req.Topology),
		slog.Int("samples", req.Dimensions.SampleSize),
		slog.Int("history", req.Dimensions.History),
		slog.String("path", req.Output),
		slog.Int("records", res.Records),
		slog.Int64("bytes", res.Bytes),
		slog.Duration("duration", res.Duration))
	return res, nil
}
