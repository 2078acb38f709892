package media_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/media"
	"github.com/feral-file/ff-tweet-indexer/internal/mocks"
)

// smallest valid png header, enough for content sniffing
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func TestNativeFilename(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"http://pbs.twimg.com/media/abc123.jpg", "abc123.jpg"},
		{"https://pbs.twimg.com/media/abc123.png?format=png&name=large", "abc123.png"},
		{"https://example.com/", ""},
		{"https://example.com", ""},
		{"::not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, media.NativeFilename(tt.url))
		})
	}
}

func TestFilePath(t *testing.T) {
	p := media.FilePath("/media", 123456, 0, ".jpg")

	rel, err := filepath.Rel("/media", p)
	require.NoError(t, err)
	parts := strings.Split(rel, string(filepath.Separator))
	require.Len(t, parts, 4)
	assert.Len(t, parts[0], 2)
	assert.Len(t, parts[1], 2)
	assert.Len(t, parts[2], 2)
	// 32 hex chars minus the three shards and the three skipped separators
	assert.Equal(t, 23+len(".jpg"), len(parts[3]))
	assert.True(t, strings.HasSuffix(parts[3], ".jpg"))

	assert.Equal(t, p, media.FilePath("/media", 123456, 0, ".jpg"), "path must be deterministic")
	assert.NotEqual(t, p, media.FilePath("/media", 123456, 1, ".jpg"))
}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("tweet media payload ", 100))

	blob, err := media.Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(blob), len(data))

	out, err := media.Decompress(blob)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	_, err = media.Decompress([]byte("not zlib"))
	assert.Error(t, err)
}

func TestFetcher_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	client := mocks.NewMockHTTPClient(ctrl)
	fetcher := media.NewFetcher(client, 0, 0, 1024)

	t.Run("extension from url", func(t *testing.T) {
		client.EXPECT().GetBytes(ctx, "https://pbs.twimg.com/media/a.JPG", int64(1024)).Return(pngBytes, nil)

		fetched, err := fetcher.Fetch(ctx, "https://pbs.twimg.com/media/a.JPG")
		require.NoError(t, err)
		assert.Equal(t, "image/png", fetched.MimeType)
		assert.Equal(t, ".jpg", fetched.Extension)
		assert.Equal(t, pngBytes, fetched.Data)
	})

	t.Run("extension from content", func(t *testing.T) {
		client.EXPECT().GetBytes(ctx, "https://example.com/media/raw", int64(1024)).Return(pngBytes, nil)

		fetched, err := fetcher.Fetch(ctx, "https://example.com/media/raw")
		require.NoError(t, err)
		assert.Equal(t, ".png", fetched.Extension)
	})

	t.Run("empty body", func(t *testing.T) {
		client.EXPECT().GetBytes(ctx, "https://example.com/empty.jpg", int64(1024)).Return([]byte{}, nil)

		_, err := fetcher.Fetch(ctx, "https://example.com/empty.jpg")
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		client.EXPECT().GetBytes(ctx, "https://example.com/big.jpg", int64(1024)).Return(nil, adapter.ErrBodyTooLarge)

		_, err := fetcher.Fetch(ctx, "https://example.com/big.jpg")
		assert.ErrorIs(t, err, adapter.ErrBodyTooLarge)
	})
}

func TestFetcher_CancelledWhileWaiting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockHTTPClient(ctrl)
	// one token per hour with the only token already spent
	fetcher := media.NewFetcher(client, 1.0/3600, 1, 0)
	client.EXPECT().GetBytes(gomock.Any(), "https://example.com/a.png", int64(0)).Return(pngBytes, nil)
	_, err := fetcher.Fetch(context.Background(), "https://example.com/a.png")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fetcher.Fetch(ctx, "https://example.com/b.png")
	assert.Error(t, err)
}

func TestBlobStorage_Store(t *testing.T) {
	row, err := media.NewBlobStorage().Store(42, 1, &media.Fetched{
		URL:       "https://pbs.twimg.com/media/pic.png",
		Data:      pngBytes,
		MimeType:  "image/png",
		Extension: ".png",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), row.TweetID)
	assert.Equal(t, 1, row.MediaIndex)
	assert.Equal(t, "pic.png", row.NativeFilename)
	assert.Equal(t, "image/png", row.MimeType)
	assert.Nil(t, row.LocalFilename)

	data, err := media.Decompress(row.Blob)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestFileStorage_Store(t *testing.T) {
	root := t.TempDir()
	storage := media.NewFileStorage(adapter.NewFileSystem(), root)

	row, err := storage.Store(42, 0, &media.Fetched{
		URL:       "https://pbs.twimg.com/media/pic.png",
		Data:      pngBytes,
		MimeType:  "image/png",
		Extension: ".png",
	})
	require.NoError(t, err)

	require.NotNil(t, row.LocalFilename)
	assert.Equal(t, media.FilePath(root, 42, 0, ".png"), *row.LocalFilename)
	assert.Nil(t, row.Blob)

	data, err := os.ReadFile(*row.LocalFilename)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestFileStorage_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fs := mocks.NewMockFileSystem(ctrl)
	fs.EXPECT().MkdirAll(gomock.Any(), gomock.Any()).Return(nil)
	fs.EXPECT().WriteFile(gomock.Any(), pngBytes, gomock.Any()).Return(errors.New("disk full"))

	_, err := media.NewFileStorage(fs, "/media").Store(1, 0, &media.Fetched{URL: "https://x/a.png", Data: pngBytes})
	assert.ErrorContains(t, err, "disk full")
}

func TestCapturer_SkipsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	fetcher := mocks.NewMockMediaFetcher(ctrl)
	capturer := media.NewCapturerWith(fetcher, media.NewBlobStorage())

	fetcher.EXPECT().Fetch(ctx, "https://example.com/0.png").
		Return(&media.Fetched{URL: "https://example.com/0.png", Data: pngBytes, MimeType: "image/png", Extension: ".png"}, nil)
	fetcher.EXPECT().Fetch(ctx, "https://example.com/1.png").Return(nil, errors.New("404"))
	fetcher.EXPECT().Fetch(ctx, "https://example.com/2.png").
		Return(&media.Fetched{URL: "https://example.com/2.png", Data: pngBytes, MimeType: "image/png", Extension: ".png"}, nil)

	rows := capturer.Capture(ctx, 7, []domain.MediaEntity{
		{URL: "https://example.com/0.png", Type: "photo"},
		{URL: "https://example.com/1.png", Type: "photo"},
		{URL: "https://example.com/2.png", Type: "photo"},
		{URL: "", Type: "photo"},
	})

	require.Len(t, rows, 2)
	// indexes follow the entity position so a retry maps to the same row
	assert.Equal(t, 0, rows[0].MediaIndex)
	assert.Equal(t, 2, rows[1].MediaIndex)
	assert.Equal(t, int64(7), rows[1].TweetID)
}

func TestNewCapturer(t *testing.T) {
	client := adapter.NewHTTPClient(0)
	fs := adapter.NewFileSystem()

	_, err := media.NewCapturer(media.Config{Storage: media.StorageBlob}, client, fs)
	assert.NoError(t, err)

	_, err = media.NewCapturer(media.Config{Storage: media.StorageFile, Path: t.TempDir()}, client, fs)
	assert.NoError(t, err)

	_, err = media.NewCapturer(media.Config{Storage: media.StorageFile}, client, fs)
	assert.Error(t, err)

	_, err = media.NewCapturer(media.Config{Storage: "s3"}, client, fs)
	assert.Error(t, err)
}
