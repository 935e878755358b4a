package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timeFormat = time.RFC3339Nano

// Cursor marks the last row of a page ordered by (timestamp DESC, id DESC).
type Cursor struct {
	Timestamp time.Time
	ID        string
}

// After reports whether a row with the given key sorts after the cursor,
// i.e. belongs on a later page.
func (c Cursor) After(ts time.Time, id string) bool {
	if ts.Equal(c.Timestamp) {
		return id < c.ID
	}
	return ts.Before(c.Timestamp)
}

// EncodeToken creates an opaque base64 token from the last row of a page.
func EncodeToken(ts time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", ts.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	ts, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return Cursor{Timestamp: ts, ID: parts[1]}, nil
}

// ClampLimit applies the default page size and an upper bound.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
