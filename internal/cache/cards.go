package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cardrender/internal/infra/logging"
	"cardrender/internal/render"
)

const keyPrefix = "cardcache:"

// Cards caches rendered card PNGs in Redis. A nil *Cards or one without a
// client behaves as an always-missing cache.
type Cards struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCards returns a cache storing entries for ttl. A non-positive ttl
// defaults to one minute.
func NewCards(rdb *redis.Client, ttl time.Duration) *Cards {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cards{rdb: rdb, ttl: ttl}
}

// Key derives the cache key for name rendered on tpl. Every drawing
// parameter is hashed, together with the size and modification time of the
// image and font files, so a restyled template or a replaced file misses.
func Key(tpl render.Template, name string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", tpl.ID, tpl.ImagePath, tpl.FontPath)
	fmt.Fprintf(h, "%s\x00", strconv.FormatFloat(tpl.FontSize, 'g', -1, 64))
	fmt.Fprintf(h, "%02x%02x%02x%02x\x00%d\x00", tpl.Color.R, tpl.Color.G, tpl.Color.B, tpl.Color.A, tpl.OffsetY)
	fmt.Fprintf(h, "%q\x00%d\x00%d\x00%d\x00", tpl.QR.Text, tpl.QR.Size, tpl.QR.X, tpl.QR.Y)
	writeFileStamp(h, tpl.ImagePath)
	writeFileStamp(h, tpl.FontPath)
	h.Write([]byte(name))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// writeFileStamp hashes the size and mtime of path. A missing file hashes as
// "-"; rendering reports that error itself.
func writeFileStamp(w io.Writer, path string) {
	fi, err := os.Stat(path)
	if err != nil {
		_, _ = io.WriteString(w, "-\x00")
		return
	}
	_, _ = fmt.Fprintf(w, "%d:%d\x00", fi.Size(), fi.ModTime().UnixNano())
}

// Get returns the cached PNG for key. Misses and Redis failures both return
// ok=false; failures are logged.
func (c *Cards) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis read failed", "key", key, "error", err)
		return nil, false
	}
	logging.Debug("Card cache hit", "key", key)
	return b, true
}

// Set stores png under key. Failures are logged and otherwise ignored.
func (c *Cards) Set(ctx context.Context, key string, png []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := c.rdb.Set(ctx, key, png, c.ttl).Err(); err != nil {
		logging.Warn("Redis write failed", "key", key, "error", err)
	}
}
