package inspector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"VixLens/internal/model"
)

const Prompt = "Enter range index: "

var ErrInvalidIndex = errors.New("range index is not an integer")

// HistogramRenderer draws the return distribution of one bucket.
type HistogramRenderer interface {
	Histogram(index int, b model.Bucket) (string, error)
}

// Inspector lets a user pick buckets by index until an out-of-range index
// or end of input.
type Inspector struct {
	In       io.Reader
	Out      io.Writer
	Buckets  []model.Bucket
	Renderer HistogramRenderer
}

func New(in io.Reader, out io.Writer, buckets []model.Bucket, renderer HistogramRenderer) *Inspector {
	return &Inspector{In: in, Out: out, Buckets: buckets, Renderer: renderer}
}

// Run loops over console input. It returns nil on an out-of-range index or
// EOF and ErrInvalidIndex on input that is not an integer.
func (i *Inspector) Run() error {
	scanner := bufio.NewScanner(i.In)
	for {
		fmt.Fprint(i.Out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(i.Out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		idx, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidIndex, line)
		}
		if idx < 0 || idx >= len(i.Buckets) {
			return nil
		}
		i.show(idx)
	}
}

func (i *Inspector) show(idx int) {
	b := i.Buckets[idx]
	fmt.Fprintf(i.Out, "%s %d returns\n", b, len(b.Returns))
	fmt.Fprintln(i.Out, formatValues(b.Returns))

	if i.Renderer == nil {
		return
	}
	path, err := i.Renderer.Histogram(idx, b)
	if err != nil {
		log.Warn().Err(err).Int("bucket", idx).Msg("histogram not rendered")
		return
	}
	log.Info().Str("path", path).Int("bucket", idx).Msg("histogram written")
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
