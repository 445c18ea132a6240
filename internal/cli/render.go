package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file (one format), base path (several) or "-" for stdout
	formats    string  // comma-separated: png, svg, json, txt
	width      float64 // logical frame width
	height     float64 // logical frame height
	ratio      float64 // device pixel ratio
	background string  // "#rrggbb"
	columns    int     // txt width in terminal cells
	noCache    bool
	refresh    bool
}

// renderCommand renders one frame to files.
//
// The optional argument is the time of day to draw (HH:MM:SS); the default
// is now.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [HH:MM:SS]",
		Short: "Render the clock to PNG, SVG, JSON or text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := ""
			if len(args) == 1 {
				at = args[0]
			}
			return c.runRender(cmd.Context(), c.cmdOut(cmd), at, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (multiple) or "-" for stdout`)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), svg, json, txt (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "logical frame width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "logical frame height (default from config)")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", 0, "device pixel ratio")
	cmd.Flags().StringVar(&opts.background, "bg", "", `background color "#rrggbb" (default transparent)`)
	cmd.Flags().IntVar(&opts.columns, "cols", 0, "terminal columns for txt output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, out io.Writer, at string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	popts, err := frameDefaults(cfg)
	if err != nil {
		return err
	}
	applyRenderFlags(&popts, opts)

	popts.Time = time.Now().In(popts.Location)
	if at != "" {
		t, err := errors.ParseClockTime(at, popts.Time)
		if err != nil {
			return err
		}
		popts.Time = t
	}
	popts.Formats = parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}
	if opts.output == "-" && len(popts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output takes a single format, got %s", strings.Join(popts.Formats, ","))
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Render(ctx, popts)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := out.Write(res.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, res.Digits, popts.Formats)
	for _, format := range popts.Formats {
		data := res.Artifacts[format]
		if err := writeFile(paths[format], data); err != nil {
			return err
		}
		printFile(out, paths[format])
		printFrameStats(out, format, len(data), res.CacheInfo.Hits[format])
	}
	prog.done(fmt.Sprintf("Rendered %s", res.Mirror))
	return nil
}

func applyRenderFlags(p *pipeline.Options, opts *renderOpts) {
	if opts.width > 0 {
		p.Width = opts.width
	}
	if opts.height > 0 {
		p.Height = opts.height
	}
	if opts.ratio > 0 {
		p.PixelRatio = opts.ratio
	}
	if opts.background != "" {
		p.Background = opts.background
	}
	if opts.columns > 0 {
		p.Columns = opts.columns
	}
	p.Refresh = opts.refresh
}

// outputPaths maps formats to file paths. With one format an output that
// already has an extension is used as is; otherwise the format's extension
// is appended to the base. The default base is "glyphclock-HHMMSS".
func outputPaths(output, digits string, formats []string) map[string]string {
	base := output
	if base == "" {
		base = appName + "-" + digits
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
