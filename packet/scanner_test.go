package packet

import (
	"context"
	"log/slog"
	"testing"

	"github.com/axmq/codec5/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvFromBytes(data []byte) Recv {
	pos := 0
	return func(_ context.Context, buf []byte) (int, error) {
		if pos >= len(data) {
			return 0, nil
		}
		n := copy(buf, data[pos:])
		pos += n
		return n, nil
	}
}

func TestScanPullSimplePacket(t *testing.T) {
	recv := recvFromBytes([]byte{0xD0, 0x00}) // PINGRESP
	res, err := ScanPull(context.Background(), recv, nil)
	require.NoError(t, err)
	assert.Equal(t, PINGRESP, res.Type)
	assert.Equal(t, uint32(0), res.RemainingLength)
	assert.Equal(t, 2, res.HeaderLength)
}

func TestScanPullWithTraceLogger(t *testing.T) {
	log := logger.NewSlogLogger(slog.LevelDebug, nil)
	recv := recvFromBytes([]byte{0xD0, 0x00})
	res, err := ScanPull(context.Background(), recv, log.Slog())
	require.NoError(t, err)
	assert.Equal(t, PINGRESP, res.Type)
}

func TestScanPullNoData(t *testing.T) {
	recv := recvFromBytes(nil)
	_, err := ScanPull(context.Background(), recv, nil)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StatusNoDataAvailable, pe.Status)
}

func TestScanPullRejectsClientOnlyType(t *testing.T) {
	recv := recvFromBytes([]byte{0x10, 0x00}) // CONNECT: a client never receives this
	_, err := ScanPull(context.Background(), recv, nil)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestScanPullMultiByteLength(t *testing.T) {
	recv := recvFromBytes([]byte{0x30, 0x80, 0x01}) // PUBLISH, remaining length 128
	res, err := ScanPull(context.Background(), recv, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(128), res.RemainingLength)
	assert.Equal(t, 3, res.HeaderLength)
}

func TestScanBufferedNeedMoreBytes(t *testing.T) {
	data := []byte{0x30, 0x80, 0x01}
	_, err := ScanBuffered(data, 0)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StatusNeedMoreBytes, pe.Status)

	_, err = ScanBuffered(data, 1)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StatusNeedMoreBytes, pe.Status)

	_, err = ScanBuffered(data, 2)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StatusNeedMoreBytes, pe.Status)
}

func TestScanBufferedIdempotent(t *testing.T) {
	data := []byte{0x30, 0x80, 0x01, 0xFF, 0xFF}
	res1, err := ScanBuffered(data, 3)
	require.NoError(t, err)
	res2, err := ScanBuffered(data, 5)
	require.NoError(t, err)
	assert.Equal(t, res1, res2)
	assert.Equal(t, uint32(128), res1.RemainingLength)
}

func TestScanBufferedRejectsPubrelBadFlags(t *testing.T) {
	data := []byte{0x60, 0x00}
	_, err := ScanBuffered(data, 2)
	assert.ErrorIs(t, err, ErrInvalidFlags)
}
