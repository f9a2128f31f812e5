package photonkd

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"go.uber.org/multierr"
)

func compressed(path string) bool { return strings.HasSuffix(path, ".zst") }

// LoadPoints reads a JSON array of points. Files ending in .zst are zstd
// compressed.
func LoadPoints(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening points %s", path)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if compressed(path) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "zstd reader for %s", path)
		}
		defer dec.Close()
		r = dec
	}
	var points []Point
	if err := json.NewDecoder(r).Decode(&points); err != nil {
		return nil, errors.Wrapf(err, "decoding points %s", path)
	}
	DebugLog("Loaded %d points from %s", len(points), path)
	return points, nil
}

// SavePoints writes points as a JSON array, zstd compressed when the
// name ends in .zst.
func SavePoints(path string, points []Point) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating points %s", path)
	}
	bw := bufio.NewWriter(f)
	defer func() {
		err = multierr.Combine(err, bw.Flush(), f.Close())
	}()

	var w io.Writer = bw
	if compressed(path) {
		enc, zerr := zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zerr != nil {
			return errors.Wrapf(zerr, "zstd writer for %s", path)
		}
		defer func() {
			err = multierr.Combine(enc.Close(), err)
		}()
		w = enc
	}
	if err := json.NewEncoder(w).Encode(points); err != nil {
		return errors.Wrapf(err, "encoding points %s", path)
	}
	return nil
}
