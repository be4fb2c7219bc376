// Package replay records and replays runs as per-frame input streams.
//
// A replay file is a zstd stream holding one JSON header line followed by
// one little-endian uint16 input mask per simulated frame. The header pins
// the seed, tick rate and full runner config, so a replay reproduces the
// run exactly even after the defaults change.
package replay

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// Version is the current file format version.
const Version = 1

// ErrBadHeader is returned when a replay header is missing or unsupported.
var ErrBadHeader = errors.New("replay: bad header")

// Header describes how a run was started.
type Header struct {
	Version   int       `json:"version"`
	Mode      string    `json:"mode"`
	Seed      int64     `json:"seed"`
	TickRate  int       `json:"tick_rate"`
	Config    string    `json:"config"` // RunnerConfig as YAML
	CreatedAt time.Time `json:"created_at"`
}

// NewHeader builds a header for a run of mode with the given config.
func NewHeader(mode string, rt core.RuntimeConfig, cfg config.RunnerConfig) (Header, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return Header{}, fmt.Errorf("replay: encode config: %w", err)
	}
	return Header{
		Version:   Version,
		Mode:      mode,
		Seed:      rt.Seed,
		TickRate:  rt.TickRate,
		Config:    string(raw),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// RunnerConfig decodes the pinned config, layered over the defaults.
func (h Header) RunnerConfig() (config.RunnerConfig, error) {
	cfg := config.DefaultRunnerConfig()
	if h.Config == "" {
		return cfg, nil
	}
	if err := yaml.Unmarshal([]byte(h.Config), &cfg); err != nil {
		return cfg, fmt.Errorf("replay: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Runtime returns the runtime config the run started with.
func (h Header) Runtime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.Seed = h.Seed
	if h.TickRate > 0 {
		rt.TickRate = h.TickRate
	}
	return rt
}

// Recorder appends frames to a replay stream. It is not safe for
// concurrent use.
type Recorder struct {
	closer io.Closer // Underlying file when the recorder owns it
	enc    *zstd.Encoder
	w      *bufio.Writer
	frames int
	buf    [2]byte
}

// NewRecorder writes the header to w and returns a recorder for frames.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	if h.Version == 0 {
		h.Version = Version
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("replay: zstd writer: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 32*1024)

	hb, err := json.Marshal(h)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("replay: encode header: %w", err)
	}
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return nil, err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return nil, err
	}
	return &Recorder{enc: enc, w: bw}, nil
}

// Create opens path for writing and returns a recorder that owns the file.
func Create(path string, h Header) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("replay: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	rec, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	rec.closer = f
	return rec, nil
}

// Record appends one frame of input.
func (r *Recorder) Record(in core.InputFrame) error {
	binary.LittleEndian.PutUint16(r.buf[:], in.Mask())
	if _, err := r.w.Write(r.buf[:]); err != nil {
		return fmt.Errorf("replay: write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames recorded so far.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close flushes the stream and closes the file if the recorder owns it.
func (r *Recorder) Close() error {
	flushErr := r.w.Flush()
	encErr := r.enc.Close()
	var fileErr error
	if r.closer != nil {
		fileErr = r.closer.Close()
	}
	return errors.Join(flushErr, encErr, fileErr)
}

// Reader reads frames back from a replay stream.
type Reader struct {
	closer io.Closer
	dec    *zstd.Decoder
	r      *bufio.Reader
	header Header
	buf    [2]byte
}

// NewReader decodes the header from r and positions at the first frame.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("replay: zstd reader: %w", err)
	}
	br := bufio.NewReaderSize(dec, 32*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if h.Version != Version {
		dec.Close()
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadHeader, h.Version)
	}
	return &Reader{dec: dec, r: br, header: h}, nil
}

// Open opens a replay file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	rd, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	rd.closer = f
	return rd, nil
}

// Header returns the decoded header.
func (rd *Reader) Header() Header {
	return rd.header
}

// Next returns the next frame, or io.EOF after the last one.
func (rd *Reader) Next() (core.InputFrame, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return core.InputFrame{}, fmt.Errorf("replay: truncated frame: %w", err)
		}
		return core.InputFrame{}, err
	}
	return core.InputFrameFromMask(binary.LittleEndian.Uint16(rd.buf[:])), nil
}

// Close releases the decoder and the file if the reader owns it.
func (rd *Reader) Close() error {
	rd.dec.Close()
	if rd.closer != nil {
		return rd.closer.Close()
	}
	return nil
}

// Load reads a whole replay file into memory.
func Load(path string) (Header, []core.InputFrame, error) {
	rd, err := Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer rd.Close()

	var frames []core.InputFrame
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rd.Header(), frames, err
		}
		frames = append(frames, f)
	}
	return rd.Header(), frames, nil
}
