// Package framedata embeds and extracts the per-frame payloads: a fixed
// 10-byte timing record in the top rows of the frame and a length-prefixed
// subtitle payload in the bottom band. Both use a multi-bit depth per
// channel, unlike the single-bit marker planes.
package framedata

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/stego/bitplane"
)

var (
	// ErrChecksumMismatch is returned when embedded data fails its CRC.
	ErrChecksumMismatch = errors.New("framedata: checksum mismatch")
	// ErrNoSubtitle is returned when the subtitle region holds no
	// plausible payload.
	ErrNoSubtitle = errors.New("framedata: no subtitle payload present")
	// ErrSubtitleRegionOverlap is returned when the frame is so short the
	// subtitle band would collide with the timing rows.
	ErrSubtitleRegionOverlap = errors.New("framedata: subtitle region overlaps timing rows")
)

const (
	timingRecordSize   = 10
	subtitleHeaderSize = 6
)

// Codec embeds and extracts frame-level data with a fixed region layout.
type Codec struct {
	// TimingRows is how many top rows carry the timing record.
	TimingRows int
	// SubtitlePercent is the height of the bottom subtitle band as a
	// percentage of the frame height.
	SubtitlePercent int
	// BitsPerChannel is the embedding depth for both regions.
	BitsPerChannel int
}

// NewCodec returns a codec with the standard layout.
func NewCodec() Codec {
	return Codec{
		TimingRows:      5,
		SubtitlePercent: 10,
		BitsPerChannel:  2,
	}
}

// TimingRecord carries per-frame ordering and timing data.
type TimingRecord struct {
	FrameNumber uint32
	TimestampMs uint32
}

// crc16 folds an IEEE CRC-32 down to 16 bits.
func crc16(data []byte) uint16 {
	return uint16(crc32.ChecksumIEEE(data) & 0xFFFF)
}

// Marshal encodes the record as 10 little-endian bytes: frame number,
// timestamp, then a CRC over the first eight bytes.
func (r TimingRecord) Marshal() []byte {
	buf := make([]byte, timingRecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], r.FrameNumber)
	binary.LittleEndian.PutUint32(buf[4:8], r.TimestampMs)
	binary.LittleEndian.PutUint16(buf[8:10], crc16(buf[:8]))
	return buf
}

// UnmarshalTimingRecord decodes and CRC-checks a 10-byte record.
func UnmarshalTimingRecord(buf []byte) (TimingRecord, error) {
	if len(buf) < timingRecordSize {
		return TimingRecord{}, ErrChecksumMismatch
	}
	if binary.LittleEndian.Uint16(buf[8:10]) != crc16(buf[:8]) {
		return TimingRecord{}, ErrChecksumMismatch
	}
	return TimingRecord{
		FrameNumber: binary.LittleEndian.Uint32(buf[0:4]),
		TimestampMs: binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}

// ============================================================
// Regions
// ============================================================

func frameRegion(f *pipeline.Frame) bitplane.Region {
	return bitplane.Region{
		Pix:      f.Pix,
		Width:    f.Width,
		Height:   f.Height,
		Channels: f.Channels,
		Stride:   f.Stride(),
	}
}

// timingRegion returns the top strip that carries the timing record.
func (c Codec) timingRegion(f *pipeline.Frame) bitplane.Region {
	rows := c.TimingRows
	if rows > f.Height {
		rows = f.Height
	}
	return frameRegion(f).Sub(0, 0, f.Width, rows)
}

// subtitleRegion returns the bottom band that carries the subtitle
// payload, or an error when the band would reach into the timing rows.
func (c Codec) subtitleRegion(f *pipeline.Frame) (bitplane.Region, error) {
	bandH := f.Height * c.SubtitlePercent / 100
	if bandH < 1 {
		bandH = 1
	}
	y0 := f.Height - bandH
	if y0 < c.TimingRows {
		return bitplane.Region{}, ErrSubtitleRegionOverlap
	}
	return frameRegion(f).Sub(0, y0, f.Width, bandH), nil
}

// TimingCapacity returns the byte capacity of the timing strip.
func (c Codec) TimingCapacity(w, h int) int {
	rows := c.TimingRows
	if rows > h {
		rows = h
	}
	return w * rows * 3 * c.BitsPerChannel / 8
}

// SubtitleBandTop returns the first row of the subtitle band for a frame
// height.
func (c Codec) SubtitleBandTop(h int) int {
	bandH := h * c.SubtitlePercent / 100
	if bandH < 1 {
		bandH = 1
	}
	return h - bandH
}

// SubtitleCapacity returns the payload byte capacity of the subtitle
// band, net of the length and CRC header. Zero means the band cannot
// hold any payload.
func (c Codec) SubtitleCapacity(w, h int) int {
	top := c.SubtitleBandTop(h)
	if top < c.TimingRows {
		return 0
	}
	return c.SubtitleCapacityRows(w, h-top)
}

// SubtitleCapacityRows returns the payload capacity of the first rows of
// the subtitle band. Payload bytes are packed row-major, so a caller that
// must keep the payload out of the band's lower rows can cap it here.
func (c Codec) SubtitleCapacityRows(w, rows int) int {
	if rows < 1 {
		return 0
	}
	capacity := w*rows*3*c.BitsPerChannel/8 - subtitleHeaderSize
	if capacity < 0 {
		return 0
	}
	return capacity
}

// ============================================================
// Timing
// ============================================================

// EmbedTiming writes the timing record into the top rows of the frame.
func (c Codec) EmbedTiming(f *pipeline.Frame, rec TimingRecord) error {
	return c.timingRegion(f).Pack(rec.Marshal(), c.BitsPerChannel)
}

// ExtractTiming reads back and CRC-checks the timing record.
func (c Codec) ExtractTiming(f *pipeline.Frame) (TimingRecord, error) {
	buf, err := c.timingRegion(f).Unpack(timingRecordSize, c.BitsPerChannel)
	if err != nil {
		return TimingRecord{}, err
	}
	return UnmarshalTimingRecord(buf)
}

// ============================================================
// Subtitles
// ============================================================

// EmbedSubtitle writes a length-prefixed, CRC-protected payload into the
// bottom band. The frame is left untouched when the payload does not fit.
func (c Codec) EmbedSubtitle(f *pipeline.Frame, payload []byte) error {
	region, err := c.subtitleRegion(f)
	if err != nil {
		return err
	}
	buf := make([]byte, subtitleHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint16(buf[4:6], crc16(payload))
	copy(buf[subtitleHeaderSize:], payload)
	return region.Pack(buf, c.BitsPerChannel)
}

// ExtractSubtitle reads back a payload embedded with EmbedSubtitle. It
// returns ErrNoSubtitle when the region holds no plausible payload and
// ErrChecksumMismatch when a plausible payload fails its CRC.
func (c Codec) ExtractSubtitle(f *pipeline.Frame) ([]byte, error) {
	region, err := c.subtitleRegion(f)
	if err != nil {
		return nil, err
	}
	header, err := region.Unpack(subtitleHeaderSize, c.BitsPerChannel)
	if err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint32(header[0:4])
	maxPayload := region.CapacityBytes(c.BitsPerChannel) - subtitleHeaderSize
	if length == 0 || int64(length) > int64(maxPayload) {
		return nil, ErrNoSubtitle
	}
	buf, err := region.Unpack(subtitleHeaderSize+int(length), c.BitsPerChannel)
	if err != nil {
		return nil, err
	}
	payload := buf[subtitleHeaderSize:]
	if binary.LittleEndian.Uint16(header[4:6]) != crc16(payload) {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}

// ============================================================
// Caption selection
// ============================================================

// SelectActive returns the caption covering the display time of a frame,
// or nil when no caption is active. The frame time is truncated to whole
// milliseconds and a caption covers [StartMs, EndMs).
func SelectActive(captions []pipeline.Caption, frameNumber uint32, fps float64) *pipeline.Caption {
	if fps <= 0 {
		return nil
	}
	t := int(float64(frameNumber) * 1000.0 / fps)
	for i := range captions {
		if t >= captions[i].StartMs && t < captions[i].EndMs {
			return &captions[i]
		}
	}
	return nil
}
