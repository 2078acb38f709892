package media

import (
	"bytes"
	"crypto/md5" //nolint:gosec,G501
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"

	"github.com/klauspost/compress/zlib"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
)

// Storage turns a fetched payload into a media row
type Storage interface {
	Store(tweetID int64, index int, fetched *Fetched) (*schema.Media, error)
}

// blobStorage keeps the zlib compressed bytes in the row itself
type blobStorage struct{}

// NewBlobStorage creates a storage that compresses payloads into the media row
func NewBlobStorage() Storage {
	return &blobStorage{}
}

func (s *blobStorage) Store(tweetID int64, index int, fetched *Fetched) (*schema.Media, error) {
	blob, err := Compress(fetched.Data)
	if err != nil {
		return nil, err
	}

	return &schema.Media{
		TweetID:        tweetID,
		MediaIndex:     index,
		NativeFilename: NativeFilename(fetched.URL),
		MimeType:       fetched.MimeType,
		Blob:           blob,
	}, nil
}

// fileStorage writes payloads under a root directory and records the path
type fileStorage struct {
	fs   adapter.FileSystem
	root string
}

// NewFileStorage creates a storage that writes payloads below root
func NewFileStorage(fs adapter.FileSystem, root string) Storage {
	return &fileStorage{fs: fs, root: root}
}

func (s *fileStorage) Store(tweetID int64, index int, fetched *Fetched) (*schema.Media, error) {
	name := FilePath(s.root, tweetID, index, fetched.Extension)

	if err := s.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := s.fs.WriteFile(name, fetched.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write media file: %w", err)
	}

	return &schema.Media{
		TweetID:        tweetID,
		MediaIndex:     index,
		NativeFilename: NativeFilename(fetched.URL),
		MimeType:       fetched.MimeType,
		LocalFilename:  &name,
	}, nil
}

// FilePath returns the sharded location of a media file:
// root/h[0:2]/h[3:5]/h[6:8]/h[9:]ext where h is the md5 hex of "<tweetID><index>"
func FilePath(root string, tweetID int64, index int, ext string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d%d", tweetID, index))) //nolint:gosec,G401
	h := hex.EncodeToString(sum[:])
	return filepath.Join(root, h[0:2], h[3:5], h[6:8], h[9:]+ext)
}

// Compress zlib compresses data
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress media: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress media: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress
func Decompress(blob []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to open media blob: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress media blob: %w", err)
	}
	return data, nil
}
